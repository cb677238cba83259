package bendpoint

import "sync/atomic"

// ConfigSource supplies the configuration for a render call.
type ConfigSource interface {
	Load() Config
}

// Preferences is a Config shared by all connections of a process and
// changed while they are being drawn. Load returns a consistent snapshot.
// The zero value holds DefaultConfig.
type Preferences struct {
	cfg atomic.Pointer[Config]
}

// NewPreferences returns preferences holding cfg.
func NewPreferences(cfg Config) *Preferences {
	p := &Preferences{}
	p.Store(cfg)
	return p
}

// Load implements the ConfigSource interface
func (p *Preferences) Load() Config {
	if c := p.cfg.Load(); c != nil {
		return *c
	}
	return DefaultConfig()
}

// Store replaces the configuration.
func (p *Preferences) Store(cfg Config) {
	p.cfg.Store(&cfg)
}

// SetRounded switches rounding on or off, keeping the radius.
func (p *Preferences) SetRounded(on bool) {
	p.update(func(c *Config) { c.Rounded = on })
}

// SetRadius changes the radius, keeping the rounding switch.
func (p *Preferences) SetRadius(r float64) {
	p.update(func(c *Config) { c.Radius = r })
}

func (p *Preferences) update(f func(*Config)) {
	for {
		old := p.cfg.Load()
		c := DefaultConfig()
		if old != nil {
			c = *old
		}
		f(&c)
		if p.cfg.CompareAndSwap(old, &c) {
			return
		}
	}
}

// Connection is a polyline connection outlined with the configuration
// currently held by Prefs.
type Connection struct {
	Points Path
	Prefs  ConfigSource // nil means DefaultConfig
}

// Config returns the snapshot a render of c would use.
func (c *Connection) Config() Config {
	if c.Prefs == nil {
		return DefaultConfig()
	}
	return c.Prefs.Load()
}

// Outline draws the connection into g.
func (c *Connection) Outline(g Graphics) {
	Outline(g, c.Points, c.Config())
}
