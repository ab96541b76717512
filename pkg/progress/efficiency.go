package progress

// Study efficiency couples ability gain to stamina and mental condition.
// Each is a percentage; the combined value multiplies weekly study hours.

// StaminaEfficiency is 100% at the starting stamina of 30 and moves one
// point per stamina point (stamina 100 -> 170%).
func StaminaEfficiency(stamina int) float64 {
	return 100 + float64(stamina-StartStamina)
}

// MentalEfficiency is 100% at the starting mental of 40 and moves one
// point per mental point (mental 100 -> 160%).
func MentalEfficiency(mental int) float64 {
	return 100 + float64(mental-StartMental)
}

// CombinedEfficiency multiplies the two percentages:
// (stamina_eff * mental_eff) / 100. Stamina 31 and mental 50 give 111.1%.
func CombinedEfficiency(stamina, mental int) float64 {
	return StaminaEfficiency(stamina) * MentalEfficiency(mental) / 100
}

// ApplySchedule raises abilities by scheduled hours multiplied by the
// current combined efficiency. Abilities cap at MaxAbility. Entries that
// are not abilities (exercise) are ignored here.
func (p *Progress) ApplySchedule() {
	if len(p.Schedule) == 0 {
		return
	}

	multiplier := CombinedEfficiency(p.Stamina, p.Mental) / 100
	for subject, hours := range p.Schedule {
		current, ok := p.Abilities[subject]
		if !ok {
			continue
		}
		next := current + float64(hours)*multiplier
		if next > MaxAbility {
			next = MaxAbility
		}
		p.Abilities[subject] = next
	}
}
