package sim

import (
	"github.com/pthm-cable/snakepit/camera"
	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/systems"
)

// Params collects the tuning the engine needs, grouped per system.
type Params struct {
	Movement systems.MovementParams
	Steering systems.SteeringParams
	Lethal   systems.LethalParams
	Spawner  systems.PelletSpawner
	Camera   camera.Params

	CollectionRadius float64
	InitialLength    float64
	PlayerSpeed      float64
	AISpeed          float64
	AICount          int
	AISpawnRadius    float64
	PelletCount      int

	ViewportW, ViewportH float64
	MaxDT                float64
}

// ParamsFromConfig builds engine parameters from a loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Movement: systems.MovementParams{
			HalfMap:              cfg.Derived.HalfMap,
			LinkSpacing:          cfg.Snake.LinkSpacing,
			CompressionThreshold: cfg.Snake.CompressionThreshold,
			DeadZone:             cfg.Snake.DeadZone,
			SegmentRadius:        cfg.Snake.SegmentRadius,
			BoostMultiplier:      cfg.Snake.BoostMultiplier,
			BoostDrainRate:       cfg.Snake.BoostDrainRate,
			MinLength:            cfg.Snake.MinLength,
			TailGrowth:           cfg.Snake.TailGrowth,
		},
		Steering: systems.SteeringParams{
			ScanLimit:       cfg.AI.ScanLimit,
			DetectionRadius: cfg.AI.DetectionRadius,
			WanderChance:    cfg.AI.WanderChance,
		},
		Lethal: systems.LethalParams{
			Other: systems.BodyCheck{
				Radius:                 cfg.Collision.OtherRadius,
				HeadExemptSegmentCount: cfg.Collision.OtherHeadExempt,
			},
			Self: systems.BodyCheck{
				Radius:                 cfg.Collision.SelfRadius,
				HeadExemptSegmentCount: cfg.Collision.SelfHeadExempt,
			},
		},
		Spawner: systems.PelletSpawner{
			HalfMap: cfg.Derived.HalfMap,
			Size:    cfg.Pellets.Size,
			Palette: cfg.Pellets.Palette,
		},
		Camera: camera.Params{
			FollowFactor:    cfg.Camera.FollowFactor,
			StartZoom:       cfg.Camera.StartZoom,
			BaseZoom:        cfg.Camera.BaseZoom,
			MinZoom:         cfg.Camera.MinZoom,
			ZoomScale:       cfg.Camera.ZoomScale,
			IntroFactor:     cfg.Camera.IntroFactor,
			ZoomFactor:      cfg.Camera.ZoomFactor,
			ZoomEpsilon:     cfg.Camera.ZoomEpsilon,
			ReferenceLength: cfg.Snake.MinLength,
		},
		CollectionRadius: cfg.Pellets.CollectionRadius,
		InitialLength:    cfg.Snake.InitialLength,
		PlayerSpeed:      cfg.Snake.BaseSpeed,
		AISpeed:          cfg.AI.BaseSpeed,
		AICount:          cfg.AI.Count,
		AISpawnRadius:    cfg.AI.SpawnRadius,
		PelletCount:      cfg.Pellets.Count,
		ViewportW:        cfg.Derived.ViewportW,
		ViewportH:        cfg.Derived.ViewportH,
		MaxDT:            cfg.Sim.MaxDT,
	}
}
