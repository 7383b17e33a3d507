package utils

import "math"

func CalculateWellnessScore(currentStreak, totalActiveDays, badgesCount int) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	daysScore := float64(totalActiveDays) * 0.05
	badgeScore := float64(badgesCount) * 1.0

	return streakScore + daysScore + badgeScore
}

// CalculateBMI returns the body mass index, 0 when inputs are missing.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}
