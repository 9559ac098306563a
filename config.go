package enginecore

// Config holds every recognized configuration option from spec.md §6, each
// defaulted the way the original engine defaults it. Zero-value Config is
// not valid; build one with NewConfig.
type Config struct {
	InitialBindlessCapacity uint32
	MaxBindlessCapacity     uint32
	GrowthFactor            uint32

	RTVHeapCapacity     uint32
	DSVHeapCapacity     uint32
	SamplerHeapCapacity uint32

	BaseColorTextureCount uint32
	ShadowColorCount      uint32
	ShadowResolution      uint32

	WorkerPoolSize int

	// MinAmbientSkylight is the floor applied to a face's skylight
	// lightmap coordinate when its neighbor is missing or in an unloaded
	// chunk (spec.md §4.I.b), expressed as a fraction of full (15/15).
	MinAmbientSkylight float32
}

// Option mutates a Config during construction, in the teacher's fluent
// builder spirit (app_builder.go's NewApp().UseModules(...)) without the
// ECS machinery that pattern was built for.
type Option func(*Config)

func WithBindlessCapacity(initial, max, growthFactor uint32) Option {
	return func(c *Config) {
		c.InitialBindlessCapacity = initial
		c.MaxBindlessCapacity = max
		c.GrowthFactor = growthFactor
	}
}

func WithOfflineHeapCapacities(rtv, dsv, sampler uint32) Option {
	return func(c *Config) {
		c.RTVHeapCapacity = rtv
		c.DSVHeapCapacity = dsv
		c.SamplerHeapCapacity = sampler
	}
}

func WithShadowSettings(colorCount, resolution uint32) Option {
	return func(c *Config) {
		c.ShadowColorCount = colorCount
		c.ShadowResolution = resolution
	}
}

func WithWorkerPoolSize(n int) Option {
	return func(c *Config) { c.WorkerPoolSize = n }
}

// NewConfig returns the spec-default configuration with opts applied on top.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		InitialBindlessCapacity: 10_000,
		MaxBindlessCapacity:     1_000_000,
		GrowthFactor:            2,

		RTVHeapCapacity:     1000,
		DSVHeapCapacity:     100,
		SamplerHeapCapacity: 2048,

		BaseColorTextureCount: 16,
		ShadowColorCount:      8,
		ShadowResolution:      2048,

		WorkerPoolSize: 4,

		MinAmbientSkylight: 1.0 / 15.0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
