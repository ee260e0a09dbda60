package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. All durations are in ticks and all
// distances and speeds in world units (per tick where applicable).
type Tuning struct {
	World     WorldTuning     `yaml:"world"`
	Player    PlayerTuning    `yaml:"player"`
	Attack    AttackTuning    `yaml:"attack"`
	Enemies   EnemiesTuning   `yaml:"enemies"`
	Items     ItemsTuning     `yaml:"items"`
	Scoring   ScoringTuning   `yaml:"scoring"`
	Camera    CameraTuning    `yaml:"camera"`
	Particles ParticlesTuning `yaml:"particles"`
}

type WorldTuning struct {
	TileSize   float64 `yaml:"tile_size"`
	Height     float64 `yaml:"height"`
	FallMargin float64 `yaml:"fall_margin"`
	// DefaultEnd is the decorated extent when a level declares no goal.
	DefaultEnd float64 `yaml:"default_end"`
	GoalMargin float64 `yaml:"goal_margin"`
}

type PlayerTuning struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	SpawnX            float64 `yaml:"spawn_x"`
	SpawnY            float64 `yaml:"spawn_y"`
	Acceleration      float64 `yaml:"acceleration"`
	MaxSpeed          float64 `yaml:"max_speed"`
	Friction          float64 `yaml:"friction"`
	Gravity           float64 `yaml:"gravity"`
	JumpVelocity      float64 `yaml:"jump_velocity"`
	JumpCut           float64 `yaml:"jump_cut"`
	StartLives        int     `yaml:"start_lives"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	KnockbackX        float64 `yaml:"knockback_x"`
	KnockbackY        float64 `yaml:"knockback_y"`
	StompBounce       float64 `yaml:"stomp_bounce"`
}

type AttackTuning struct {
	DurationTicks int     `yaml:"duration_ticks"`
	CooldownTicks int     `yaml:"cooldown_ticks"`
	Range         float64 `yaml:"range"`
}

type EnemyBodyTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

type FlierTuning struct {
	EnemyBodyTuning `yaml:",inline"`
	HoverAmplitude  float64 `yaml:"hover_amplitude"`
	HoverPeriod     float64 `yaml:"hover_period"`
}

type RangedTuning struct {
	EnemyBodyTuning    `yaml:",inline"`
	DetectRadius       float64 `yaml:"detect_radius"`
	EyeOffsetY         float64 `yaml:"eye_offset_y"`
	MuzzleInset        float64 `yaml:"muzzle_inset"`
	MuzzleOffsetY      float64 `yaml:"muzzle_offset_y"`
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileGravity  float64 `yaml:"projectile_gravity"`
	ProjectileSize     float64 `yaml:"projectile_size"`
	MinLaunchVY        float64 `yaml:"min_launch_vy"`
	MaxLaunchVY        float64 `yaml:"max_launch_vy"`
	CooldownBase       float64 `yaml:"cooldown_base"`
	CooldownJitter     float64 `yaml:"cooldown_jitter"`
	InitialCooldownMax float64 `yaml:"initial_cooldown_max"`
}

type BossTuning struct {
	EnemyBodyTuning `yaml:",inline"`
	HP              int     `yaml:"hp"`
	ChargeRange     float64 `yaml:"charge_range"`
	ChargeSpeed     float64 `yaml:"charge_speed"`
	MeleeRange      float64 `yaml:"melee_range"`
	FallSpeed       float64 `yaml:"fall_speed"`
	ProbeInset      float64 `yaml:"probe_inset"`
	RecoilX         float64 `yaml:"recoil_x"`
	RecoilY         float64 `yaml:"recoil_y"`
	StompFraction   float64 `yaml:"stomp_fraction"`
}

type EnemiesTuning struct {
	Walker     EnemyBodyTuning `yaml:"walker"`
	FastWalker EnemyBodyTuning `yaml:"fast_walker"`
	Flier      FlierTuning     `yaml:"flier"`
	Ranged     RangedTuning    `yaml:"ranged"`
	Boss       BossTuning      `yaml:"boss"`

	StompFraction   float64 `yaml:"stomp_fraction"`
	SnapWindow      float64 `yaml:"snap_window"`
	PatrolHalfWidth float64 `yaml:"patrol_half_width"`
	HitFlashTicks   int     `yaml:"hit_flash_ticks"`
	WallProbeInset  float64 `yaml:"wall_probe_inset"`
	LedgeProbeDepth float64 `yaml:"ledge_probe_depth"`
	GroundAbove     float64 `yaml:"ground_above"`
	GroundBelow     float64 `yaml:"ground_below"`
	Variants        int     `yaml:"variants"`
}

type ItemsTuning struct {
	CollectibleSize float64 `yaml:"collectible_size"`
	HazardSize      float64 `yaml:"hazard_size"`
	HazardInset     float64 `yaml:"hazard_inset"`
	GoalWidth       float64 `yaml:"goal_width"`
	GoalHeight      float64 `yaml:"goal_height"`
	GoalPushBack    float64 `yaml:"goal_push_back"`
}

type ScoringTuning struct {
	EnemyHit    int `yaml:"enemy_hit"`
	EnemyDefeat int `yaml:"enemy_defeat"`
	BossDefeat  int `yaml:"boss_defeat"`
	Bone        int `yaml:"bone"`
	LifeToken   int `yaml:"life_token"`
}

type CameraTuning struct {
	Lead       float64 `yaml:"lead"`
	Smoothness float64 `yaml:"smoothness"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
}

type BurstTuning struct {
	Count     int     `yaml:"count"`
	Speed     float64 `yaml:"speed"`
	SizeMin   float64 `yaml:"size_min"`
	SizeRange float64 `yaml:"size_range"`
	Life      float64 `yaml:"life"`
	Decay     float64 `yaml:"decay"`
	Gravity   float64 `yaml:"gravity"`
}

type FireworkTuning struct {
	BurstTuning `yaml:",inline"`
	SpeedMin    float64     `yaml:"speed_min"`
	Chance      float64     `yaml:"chance"`
	SpawnWidth  float64     `yaml:"spawn_width"`
	SpawnYMin   float64     `yaml:"spawn_y_min"`
	SpawnYRange float64     `yaml:"spawn_y_range"`
	Colors      []YAMLColor `yaml:"colors"`
}

type ParticlesTuning struct {
	Burst       BurstTuning    `yaml:"burst"`
	DefeatCount int            `yaml:"defeat_count"`
	Firework    FireworkTuning `yaml:"firework"`
	Colors      ParticleColors `yaml:"colors"`
}

type ParticleColors struct {
	Jump       YAMLColor `yaml:"jump"`
	PlayerHurt YAMLColor `yaml:"player_hurt"`
	EnemyHit   YAMLColor `yaml:"enemy_hit"`
	EnemyDie   YAMLColor `yaml:"enemy_die"`
	Projectile YAMLColor `yaml:"projectile"`
	Bone       YAMLColor `yaml:"bone"`
	LifeToken  YAMLColor `yaml:"life_token"`
}

// DefaultTuning returns the compiled-in constants. tuning.yaml overlays them.
func DefaultTuning() *Tuning {
	return &Tuning{
		World: WorldTuning{TileSize: 32, Height: 600, FallMargin: 100, DefaultEnd: 5000, GoalMargin: 1000},
		Player: PlayerTuning{
			Width: 55, Height: 35, SpawnX: 100, SpawnY: 400,
			Acceleration: 0.5, MaxSpeed: 6, Friction: 0.8, Gravity: 0.6,
			JumpVelocity: -14, JumpCut: 0.9,
			StartLives: 3, InvulnerableTicks: 120,
			KnockbackX: 8, KnockbackY: -5, StompBounce: -12,
		},
		Attack: AttackTuning{DurationTicks: 15, CooldownTicks: 30, Range: 40},
		Enemies: EnemiesTuning{
			Walker:     EnemyBodyTuning{Width: 48, Height: 42, Speed: 2},
			FastWalker: EnemyBodyTuning{Width: 48, Height: 30, Speed: 4},
			Flier: FlierTuning{
				EnemyBodyTuning: EnemyBodyTuning{Width: 48, Height: 36, Speed: 3},
				HoverAmplitude:  2, HoverPeriod: 12,
			},
			Ranged: RangedTuning{
				EnemyBodyTuning: EnemyBodyTuning{Width: 40, Height: 40, Speed: 0},
				DetectRadius:    700, EyeOffsetY: 20, MuzzleInset: 10, MuzzleOffsetY: 25,
				ProjectileSpeed: 9, ProjectileGravity: 0.2, ProjectileSize: 30,
				MinLaunchVY: -12, MaxLaunchVY: 2,
				CooldownBase: 90, CooldownJitter: 60, InitialCooldownMax: 200,
			},
			Boss: BossTuning{
				EnemyBodyTuning: EnemyBodyTuning{Width: 96, Height: 96, Speed: 1},
				HP:              25, ChargeRange: 300, ChargeSpeed: 4.5, MeleeRange: 60,
				FallSpeed: 5, ProbeInset: 10, RecoilX: 10, RecoilY: -6, StompFraction: 0.85,
			},
			StompFraction: 0.6, SnapWindow: 100, PatrolHalfWidth: 100, HitFlashTicks: 10,
			WallProbeInset: 2, LedgeProbeDepth: 4, GroundAbove: 5, GroundBelow: 25, Variants: 4,
		},
		Items: ItemsTuning{
			CollectibleSize: 24, HazardSize: 48, HazardInset: 10,
			GoalWidth: 60, GoalHeight: 54, GoalPushBack: 5,
		},
		Scoring: ScoringTuning{EnemyHit: 50, EnemyDefeat: 150, BossDefeat: 1000, Bone: 50, LifeToken: 200},
		Camera:  CameraTuning{Lead: 300, Smoothness: 0.1, ViewWidth: 800, ViewHeight: 600},
		Particles: ParticlesTuning{
			Burst:       BurstTuning{Count: 8, Speed: 10, SizeMin: 2, SizeRange: 6, Life: 1, Decay: 0.05},
			DefeatCount: 16,
			Firework: FireworkTuning{
				BurstTuning: BurstTuning{Count: 20, Speed: 8, SizeMin: 2, SizeRange: 4, Life: 2, Decay: 0.02, Gravity: 0.1},
				SpeedMin:    2, Chance: 0.05, SpawnWidth: 800, SpawnYMin: 50, SpawnYRange: 300,
				Colors: []YAMLColor{
					Hex("#FF0000"), Hex("#00FF00"), Hex("#0000FF"),
					Hex("#FFFF00"), Hex("#FF00FF"), Hex("#00FFFF"),
				},
			},
			Colors: ParticleColors{
				Jump:       Hex("#FFFFFF"),
				PlayerHurt: Hex("#ECA758"),
				EnemyHit:   Hex("#FFFFFF"),
				EnemyDie:   Hex("#9CA3AF"),
				Projectile: Hex("#8B4513"),
				Bone:       Hex("#F4F4F4"),
				LifeToken:  Hex("#CCFF00"),
			},
		},
	}
}

// LoadTuning overlays tuning.yaml (disk copy first, embedded copy otherwise)
// on top of DefaultTuning. The defaults are returned alongside any error.
func LoadTuning() (*Tuning, error) {
	return LoadTuningFile("tuning.yaml")
}

func LoadTuningFile(name string) (*Tuning, error) {
	t := DefaultTuning()
	data, err := Load(name)
	if err != nil {
		return t, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	if err := ParseTuning(data, t); err != nil {
		return DefaultTuning(), fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return t, nil
}

// ParseTuning decodes YAML over t, leaving fields the document omits as
// they were. t is only written when the whole document decodes.
func ParseTuning(data []byte, t *Tuning) error {
	if t == nil {
		return fmt.Errorf("nil tuning")
	}
	next := *t
	if err := yaml.Unmarshal(data, &next); err != nil {
		return err
	}
	*t = next
	return nil
}
