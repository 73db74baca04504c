package config

import "sort"

var Presets = map[string]*Config{
	"rolling_disc": {
		Name: "rolling_disc",
		Components: []ComponentConfig{
			{Name: "ground", Kind: "flat_ground", Options: map[string]string{"normal": "-z"}},
			{Name: "disc", Kind: "knife_edge_wheel"},
			{Name: "tire", Kind: "non_holonomic_tire"},
			{Name: "rolling_disc", Kind: "rolling_disc", Bind: map[string]string{"ground": "ground", "disc": "disc", "tire": "tire"}},
		},
		Mixins: []MixinConfig{{Component: "tire", Mixin: "normal_force"}},
		Roots:  []string{"rolling_disc"},
	},
	"seated_rider": {
		Name:       "seated_rider",
		Components: seatedRider("planar", ""),
		Roots:      []string{"bicycle_rider"},
	},
	"seated_rider_spring": {
		Name:       "seated_rider_spring",
		Components: seatedRider("simple_rigid", ""),
		LoadGroups: []LoadGroupConfig{
			{Name: "seat_spring", Kind: "side_lean_seat_spring_damper", Parent: "seat"},
		},
		Roots: []string{"bicycle_rider"},
	},
	"seated_rider_torque": {
		Name: "seated_rider_torque",
		Components: append(seatedRider("simple_rigid", "rear_wheel"),
			ComponentConfig{Name: "rear_wheel", Kind: "knife_edge_wheel"},
		),
		LoadGroups: []LoadGroupConfig{
			{Name: "seat_torque", Kind: "side_lean_seat_torque", Parent: "seat"},
			{Name: "drive", Kind: "wheel_torque", Parent: "bicycle"},
		},
		Roots: []string{"bicycle_rider"},
	},
}

// seatedRider describes a rider on a stationary bicycle. wheel names the rear
// wheel component when the bicycle has one.
func seatedRider(pelvis, wheel string) []ComponentConfig {
	bike := map[string]string{"rear_frame": "rear_frame"}
	if wheel != "" {
		bike["rear_wheel"] = wheel
	}
	return []ComponentConfig{
		{Name: "rear_frame", Kind: "rear_frame", Formulation: "moore"},
		{Name: "pelvis", Kind: "pelvis", Formulation: pelvis},
		{Name: "bicycle", Kind: "stationary_bicycle", Bind: bike},
		{Name: "rider", Kind: "rider", Bind: map[string]string{"pelvis": "pelvis"}},
		{Name: "seat", Kind: "side_lean_seat"},
		{Name: "bicycle_rider", Kind: "bicycle_rider", Bind: map[string]string{"bicycle": "bicycle", "rider": "rider", "seat": "seat"}},
	}
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
