package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning collects every load-bearing constant of the streaming and placement
// engine. Values are read once at startup; the engine never mutates them.
//
// The retry bounds and separation buffers are not cosmetic: the cross-chunk
// separation guarantees hold only relative to these numbers.
type Tuning struct {
	// Seed selects the placement RNG seed. Zero means time-based, so every
	// run (and every reload of a chunk coordinate) produces fresh content.
	Seed int64 `yaml:"seed"`

	ChunkSize    float64 `yaml:"chunk_size"`
	WindowRadius int     `yaml:"window_radius"`

	Terrain     Terrain     `yaml:"terrain"`
	Trees       Trees       `yaml:"trees"`
	Mountains   Mountains   `yaml:"mountains"`
	Runways     Runways     `yaml:"runways"`
	Settlements Settlements `yaml:"settlements"`
}

// Terrain controls surface sampling and vertex coloring.
type Terrain struct {
	// GridRes is the number of quads per chunk edge; vertices are GridRes+1.
	GridRes int `yaml:"grid_res"`
	// RockLine and SandLine split the color bands: rock above, sand below,
	// grass with deterministic jitter in between.
	RockLine    float64 `yaml:"rock_line"`
	SandLine    float64 `yaml:"sand_line"`
	ColorJitter float64 `yaml:"color_jitter"`
}

type Trees struct {
	CountPerChunk   int     `yaml:"count_per_chunk"`
	CenterExclusion float64 `yaml:"center_exclusion"`
	WaterLevel      float64 `yaml:"water_level"`
	ScaleMin        float64 `yaml:"scale_min"`
	ScaleMax        float64 `yaml:"scale_max"`
	HitRadius       float64 `yaml:"hit_radius"`
	Height          float64 `yaml:"height"`

	BossCount     int     `yaml:"boss_count"`
	BossExclusion float64 `yaml:"boss_exclusion"`
	BossMaxHealth int     `yaml:"boss_max_health"`
	BossHitRadius float64 `yaml:"boss_hit_radius"`
	BossHeight    float64 `yaml:"boss_height"`
}

type Mountains struct {
	PlaceRetries  int     `yaml:"place_retries"`
	RadialMin     float64 `yaml:"radial_min"` // fraction of chunk size
	RadialMax     float64 `yaml:"radial_max"` // fraction of chunk size
	Buffer        float64 `yaml:"buffer"`
	PeaksMin      int     `yaml:"peaks_min"`
	PeaksMax      int     `yaml:"peaks_max"`
	PeakRadiusMin float64 `yaml:"peak_radius_min"`
	PeakRadiusMax float64 `yaml:"peak_radius_max"`
	PeakHeightMin float64 `yaml:"peak_height_min"`
	PeakHeightMax float64 `yaml:"peak_height_max"`
	// FlareFactor widens a peak's base; the conservative registered radius is
	// largest peak radius times this factor.
	FlareFactor  float64 `yaml:"flare_factor"`
	SnowLine     float64 `yaml:"snow_line"` // fraction of peak height
	ClearMargin  float64 `yaml:"clear_margin"`
	RingTrees    int     `yaml:"ring_trees"`
	RingWidth    float64 `yaml:"ring_width"`
	FallbackDist float64 `yaml:"fallback_dist"` // fraction of chunk size
}

type Runways struct {
	PlaceRetries    int     `yaml:"place_retries"`
	Length          float64 `yaml:"length"`
	Width           float64 `yaml:"width"`
	SafeRadius      float64 `yaml:"safe_radius"`
	DeckClearance   float64 `yaml:"deck_clearance"`
	TreeClearRadius float64 `yaml:"tree_clear_radius"`
	RadialMin       float64 `yaml:"radial_min"`
	RadialMax       float64 `yaml:"radial_max"`
	FallbackDist    float64 `yaml:"fallback_dist"`
}

type Settlements struct {
	ClusterAttempts     int     `yaml:"cluster_attempts"`
	BuildingsPerCluster int     `yaml:"buildings_per_cluster"`
	ClusterSpread       float64 `yaml:"cluster_spread"`
	RunwayClearance     float64 `yaml:"runway_clearance"`
	MountainClearance   float64 `yaml:"mountain_clearance"`
	OverlapMargin       float64 `yaml:"overlap_margin"`
}

// Default returns the tuning the engine ships with. A 1000-unit chunk with a
// 3x3 window matches the reference scenario numbers.
func Default() Tuning {
	return Tuning{
		ChunkSize:    1000,
		WindowRadius: 1,
		Terrain: Terrain{
			GridRes:     32,
			RockLine:    10.0,
			SandLine:    0.5,
			ColorJitter: 0.08,
		},
		Trees: Trees{
			CountPerChunk:   60,
			CenterExclusion: 120,
			WaterLevel:      0,
			ScaleMin:        0.8,
			ScaleMax:        1.3,
			HitRadius:       4,
			Height:          14,
			BossCount:       6,
			BossExclusion:   200,
			BossMaxHealth:   10,
			BossHitRadius:   7,
			BossHeight:      26,
		},
		Mountains: Mountains{
			PlaceRetries:  5,
			RadialMin:     0.30,
			RadialMax:     0.45,
			Buffer:        80,
			PeaksMin:      3,
			PeaksMax:      5,
			PeakRadiusMin: 60,
			PeakRadiusMax: 140,
			PeakHeightMin: 120,
			PeakHeightMax: 260,
			FlareFactor:   1.35,
			SnowLine:      0.55,
			ClearMargin:   25,
			RingTrees:     8,
			RingWidth:     60,
			FallbackDist:  0.35,
		},
		Runways: Runways{
			PlaceRetries:    5,
			Length:          320,
			Width:           48,
			SafeRadius:      220,
			DeckClearance:   2.0,
			TreeClearRadius: 150,
			RadialMin:       0.30,
			RadialMax:       0.45,
			FallbackDist:    0.35,
		},
		Settlements: Settlements{
			ClusterAttempts:     2,
			BuildingsPerCluster: 6,
			ClusterSpread:       140,
			RunwayClearance:     60,
			MountainClearance:   40,
			OverlapMargin:       4,
		},
	}
}

// Load reads a yaml tuning file over the defaults, so partial files only
// override what they name.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.ChunkSize <= 0 {
		return fmt.Errorf("tuning: chunk_size must be positive, got %v", t.ChunkSize)
	}
	if t.WindowRadius < 0 {
		return fmt.Errorf("tuning: window_radius must not be negative, got %d", t.WindowRadius)
	}
	if t.Terrain.GridRes < 1 {
		return fmt.Errorf("tuning: terrain.grid_res must be at least 1, got %d", t.Terrain.GridRes)
	}
	if t.Mountains.RadialMin > t.Mountains.RadialMax {
		return fmt.Errorf("tuning: mountains.radial_min exceeds radial_max")
	}
	if t.Trees.ScaleMin > t.Trees.ScaleMax {
		return fmt.Errorf("tuning: trees.scale_min exceeds scale_max")
	}
	return nil
}
