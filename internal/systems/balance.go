// Package systems implements the per-tick update rules (components G
// through L): Needs, Routine, Farming, Survival, Agent AI, and the Action
// Executor. Each system reads its own slice of configuration once at
// construction, the way src/systems/needs_system.py and
// src/systems/farming_system.py do in the reference implementation,
// rather than re-parsing the document every tick.
package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/config"
)

// SeasonMods are the per-season multipliers from time.seasons.<name>.
type SeasonMods struct {
	CropGrowthMultiplier             float64
	FoodConsumptionMultiplier        float64
	ColdGainMultiplier                float64
	ColdDamageProbabilityMultiplier  float64
}

// defaultSeasonMods returns the hard-coded fallback multipliers for a
// season when configuration omits time.seasons.<name> entirely. Winter
// is harsher (slower growth, colder, riskier) by default; the other
// three seasons are neutral.
func defaultSeasonMods(season clock.Season) SeasonMods {
	if season == clock.Winter {
		return SeasonMods{
			CropGrowthMultiplier:             0.2,
			FoodConsumptionMultiplier:        1.3,
			ColdGainMultiplier:               1.8,
			ColdDamageProbabilityMultiplier:  2.0,
		}
	}
	return SeasonMods{
		CropGrowthMultiplier:             1.0,
		FoodConsumptionMultiplier:        1.0,
		ColdGainMultiplier:               1.0,
		ColdDamageProbabilityMultiplier:  1.0,
	}
}

// NeedsRates are the villager need drift rates from
// entities.villager.needs.
type NeedsRates struct {
	HungerPerHour               float64
	TirednessPerHourWorking     float64
	TirednessPerHourResting     float64
	ColdGainPerHourDay          float64
	ColdGainPerHourNight        float64
	ColdDamageProbabilityBase   float64
	ColdDamageAmount            float64
}

// CropBalance is a crop kind's growth time and yield table.
type CropBalance struct {
	GrowthDays float64
	Yield      map[string][2]float64 // item kind -> [min, max]
}

// ToolBalance is a tool kind's chop efficiency and wear rate.
type ToolBalance struct {
	Efficiency            float64
	DurabilityLossPerUse  float64
}

// TrappingBalance configures trap placement and checking.
type TrappingBalance struct {
	CatchProbabilityBase     float64
	CatchProbabilityPerSkill float64
	Durability               float64
}

// FishingBalance configures fishing attempts.
type FishingBalance struct {
	CatchProbabilityBase     float64
	CatchProbabilityPerSkill float64
	TimePerAttemptSeconds    float64
	BestHours                []int
	BestHoursBonus           float64
}

// FireBalance configures fire creation and warmth.
type FireBalance struct {
	CreationCostLogs        float64
	WarmthRadius            int
	FuelConsumptionPerHour  float64
	ColdReductionPerHour    float64
}

// Balance is every piece of read-only configuration the tick systems
// consult, parsed once at startup.
type Balance struct {
	DayLengthSeconds float64
	MoveSpeed        float64
	ChopSpeed        float64
	DefaultSkills    map[string]float64
	DailySchedule    map[string][2]float64

	Needs   NeedsRates
	Seasons map[clock.Season]SeasonMods

	Crops     map[string]CropBalance
	ItemFoodValue map[string]float64
	Tools     map[string]ToolBalance
	Trapping  TrappingBalance
	Fishing   FishingBalance
	Fire      FireBalance
}

// LoadBalance reads every balance field from cfg, falling back to the
// hard-coded defaults the corresponding Get* call documents for a miss.
func LoadBalance(cfg *config.Config) *Balance {
	b := &Balance{
		DayLengthSeconds: cfg.GetFloat("simulation.day_length_seconds", 1200),
		MoveSpeed:        cfg.GetFloat("entities.villager.move_speed", 3.0),
		ChopSpeed:        cfg.GetFloat("entities.villager.chop_speed", 5.0),
		DefaultSkills:    map[string]float64{},
		DailySchedule:    map[string][2]float64{},
		Seasons:          map[clock.Season]SeasonMods{},
		Crops:            map[string]CropBalance{},
		ItemFoodValue:    map[string]float64{},
		Tools:            map[string]ToolBalance{},
	}

	for k, v := range cfg.GetMap("entities.villager.default_skills") {
		if f, ok := toFloat(v); ok {
			b.DefaultSkills[k] = f
		}
	}

	b.Needs = NeedsRates{
		HungerPerHour:             cfg.GetFloat("entities.villager.needs.hunger_per_hour", 4.0),
		TirednessPerHourWorking:   cfg.GetFloat("entities.villager.needs.tiredness_per_hour_working", 6.0),
		TirednessPerHourResting:   cfg.GetFloat("entities.villager.needs.tiredness_per_hour_resting", 12.0),
		ColdGainPerHourDay:        cfg.GetFloat("entities.villager.needs.cold_gain_per_hour_day", 1.0),
		ColdGainPerHourNight:      cfg.GetFloat("entities.villager.needs.cold_gain_per_hour_night", 3.0),
		ColdDamageProbabilityBase: cfg.GetFloat("entities.villager.needs.cold_damage_probability_base", 0.01),
		ColdDamageAmount:          cfg.GetFloat("entities.villager.needs.cold_damage_amount", 1.0),
	}

	for _, name := range []string{"wake", "breakfast", "work_morning", "lunch", "work_afternoon", "dinner", "leisure", "sleep"} {
		b.DailySchedule[name] = cfg.GetFloatRange("entities.villager.daily_schedule."+name, defaultScheduleInterval(name))
	}

	for _, season := range []clock.Season{clock.Spring, clock.Summer, clock.Autumn, clock.Winter} {
		name := season.String()
		mods := defaultSeasonMods(season)
		mods.CropGrowthMultiplier = cfg.GetFloat("time.seasons."+name+".crop_growth_multiplier", mods.CropGrowthMultiplier)
		mods.FoodConsumptionMultiplier = cfg.GetFloat("time.seasons."+name+".food_consumption_multiplier", mods.FoodConsumptionMultiplier)
		mods.ColdGainMultiplier = cfg.GetFloat("time.seasons."+name+".cold_gain_multiplier", mods.ColdGainMultiplier)
		mods.ColdDamageProbabilityMultiplier = cfg.GetFloat("time.seasons."+name+".cold_damage_probability_multiplier", mods.ColdDamageProbabilityMultiplier)
		b.Seasons[season] = mods
	}

	for kind, raw := range cfg.GetMap("entities.crops") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		cb := CropBalance{
			GrowthDays: toFloatDefault(m["growth_days"], 3.0),
			Yield:      map[string][2]float64{},
		}
		if ym, ok := m["yield"].(map[string]any); ok {
			for item, rng := range ym {
				if seq, ok := rng.([]any); ok && len(seq) == 2 {
					lo, _ := toFloat(seq[0])
					hi, _ := toFloat(seq[1])
					cb.Yield[item] = [2]float64{lo, hi}
				}
			}
		}
		b.Crops[kind] = cb
	}

	for kind, raw := range cfg.GetMap("entities.items") {
		if m, ok := raw.(map[string]any); ok {
			b.ItemFoodValue[kind] = toFloatDefault(m["food_value"], 0)
		}
	}

	for kind, raw := range cfg.GetMap("entities.tools") {
		if m, ok := raw.(map[string]any); ok {
			b.Tools[kind] = ToolBalance{
				Efficiency:           toFloatDefault(m["efficiency"], 1.0),
				DurabilityLossPerUse: toFloatDefault(m["durability_loss_per_use"], 1.0),
			}
		}
	}

	b.Trapping = TrappingBalance{
		CatchProbabilityBase:     cfg.GetFloat("entities.trapping.trap_catch_probability_base", 0.15),
		CatchProbabilityPerSkill: cfg.GetFloat("entities.trapping.trap_catch_probability_per_skill", 0.5),
		Durability:               cfg.GetFloat("entities.trapping.trap_durability", 10.0),
	}

	b.Fishing = FishingBalance{
		CatchProbabilityBase:     cfg.GetFloat("entities.fishing.fishing_catch_probability_base", 0.2),
		CatchProbabilityPerSkill: cfg.GetFloat("entities.fishing.fishing_catch_probability_per_skill", 0.5),
		TimePerAttemptSeconds:    cfg.GetFloat("entities.fishing.fishing_time_per_attempt_seconds", 30.0),
		BestHours:                cfg.GetIntSlice("entities.fishing.fishing_best_hours", []int{6, 7, 18, 19}),
		BestHoursBonus:           cfg.GetFloat("entities.fishing.fishing_best_hours_bonus", 0.1),
	}

	b.Fire = FireBalance{
		CreationCostLogs:       cfg.GetFloat("entities.fire.fire_creation_cost_logs", 2.0),
		WarmthRadius:           cfg.GetInt("entities.fire.fire_warmth_radius", 5),
		FuelConsumptionPerHour: cfg.GetFloat("entities.fire.fire_fuel_consumption_per_hour", 1.0),
		ColdReductionPerHour:   cfg.GetFloat("entities.fire.fire_cold_reduction_per_hour", 10.0),
	}

	return b
}

func defaultScheduleInterval(name string) [2]float64 {
	switch name {
	case "wake":
		return [2]float64{5, 6}
	case "breakfast":
		return [2]float64{6, 7}
	case "work_morning":
		return [2]float64{7, 12}
	case "lunch":
		return [2]float64{12, 13}
	case "work_afternoon":
		return [2]float64{13, 18}
	case "dinner":
		return [2]float64{18, 19}
	case "leisure":
		return [2]float64{19, 22}
	case "sleep":
		return [2]float64{22, 5}
	default:
		return [2]float64{0, 0}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toFloatDefault(v any, def float64) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}
