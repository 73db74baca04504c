package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/brim/internal/assembly"
	"github.com/san-kum/brim/internal/catalog"
	"github.com/san-kum/brim/internal/core"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName   = "model"
	DefaultPreset = "rolling_disc"
)

var ErrInvalid = errors.New("config: invalid model description")

type Config struct {
	Name        string            `yaml:"name"`
	Components  []ComponentConfig `yaml:"components"`
	LoadGroups  []LoadGroupConfig `yaml:"load_groups,omitempty"`
	Mixins      []MixinConfig     `yaml:"mixins,omitempty"`
	Roots       []string          `yaml:"roots"`
	Connections []string          `yaml:"connections,omitempty"`
}

type ComponentConfig struct {
	Name        string            `yaml:"name"`
	Kind        string            `yaml:"kind"`
	Formulation string            `yaml:"formulation,omitempty"`
	Options     map[string]string `yaml:"options,omitempty"`
	Bind        map[string]string `yaml:"bind,omitempty"`
}

type LoadGroupConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Parent string `yaml:"parent"`
}

type MixinConfig struct {
	Component string `yaml:"component"`
	Mixin     string `yaml:"mixin"`
}

// DefaultConfig returns a copy of the rolling disc preset.
func DefaultConfig() *Config {
	return GetPreset(DefaultPreset).clone()
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Name: DefaultName}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Components = make([]ComponentConfig, len(c.Components))
	for i, cc := range c.Components {
		cc.Options = cloneMap(cc.Options)
		cc.Bind = cloneMap(cc.Bind)
		out.Components[i] = cc
	}
	out.LoadGroups = append([]LoadGroupConfig(nil), c.LoadGroups...)
	out.Mixins = append([]MixinConfig(nil), c.Mixins...)
	out.Roots = append([]string(nil), c.Roots...)
	out.Connections = append([]string(nil), c.Connections...)
	return &out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that names are unique and that every reference resolves.
// Kinds are checked when the model is built.
func (c *Config) Validate() error {
	if err := core.ValidateName(c.Name); err != nil {
		return invalid("model name %q", c.Name)
	}
	components := make(map[string]bool)
	seen := make(map[string]bool)
	for _, cc := range c.Components {
		if cc.Name == "" || cc.Kind == "" {
			return invalid("component needs a name and a kind")
		}
		if seen[cc.Name] {
			return invalid("duplicate name %s", cc.Name)
		}
		seen[cc.Name] = true
		components[cc.Name] = true
	}
	for _, lg := range c.LoadGroups {
		if lg.Name == "" || lg.Kind == "" {
			return invalid("load group needs a name and a kind")
		}
		if seen[lg.Name] {
			return invalid("duplicate name %s", lg.Name)
		}
		seen[lg.Name] = true
		if !components[lg.Parent] {
			return invalid("load group %s: unknown parent %q", lg.Name, lg.Parent)
		}
	}
	for _, cc := range c.Components {
		for attr, target := range cc.Bind {
			if !components[target] {
				return invalid("%s.%s: unknown component %q", cc.Name, attr, target)
			}
		}
	}
	for _, mx := range c.Mixins {
		if !components[mx.Component] {
			return invalid("mixin %s: unknown component %q", mx.Mixin, mx.Component)
		}
	}
	if len(c.Roots) == 0 {
		return invalid("no roots")
	}
	for _, list := range [][]string{c.Roots, c.Connections} {
		for _, name := range list {
			if !components[name] {
				return invalid("unknown component %q", name)
			}
		}
	}
	return nil
}

// Build constructs every component, attaches mixins, binds slots, attaches
// load groups and returns the assembly over the roots and connections.
func Build(cfg *Config, reg *catalog.Registry, opts ...assembly.Option) (*assembly.Assembly, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	built := make(map[string]core.Model, len(cfg.Components))
	for _, cc := range cfg.Components {
		m, err := reg.GetComponent(cc.Kind, catalog.Spec{Name: cc.Name, Formulation: cc.Formulation, Options: cc.Options})
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", cc.Name, err)
		}
		built[cc.Name] = m
	}
	for _, mc := range cfg.Mixins {
		mx, err := reg.GetMixin(mc.Mixin)
		if err != nil {
			return nil, err
		}
		if err := built[mc.Component].Core().AddMixin(mx); err != nil {
			return nil, err
		}
	}
	for _, cc := range cfg.Components {
		attrs := make([]string, 0, len(cc.Bind))
		for attr := range cc.Bind {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)
		for _, attr := range attrs {
			if err := built[cc.Name].Core().Bind(attr, built[cc.Bind[attr]]); err != nil {
				return nil, err
			}
		}
	}
	for _, lg := range cfg.LoadGroups {
		g, err := reg.GetLoadGroup(lg.Kind, lg.Name)
		if err != nil {
			return nil, fmt.Errorf("load group %s: %w", lg.Name, err)
		}
		if err := built[lg.Parent].Core().AddLoadGroups(g); err != nil {
			return nil, err
		}
	}

	a, err := assembly.New(cfg.Name, opts...)
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.Roots {
		if err := a.Add(built[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range cfg.Connections {
		if err := a.Connect(built[name]); err != nil {
			return nil, err
		}
	}
	return a, nil
}
