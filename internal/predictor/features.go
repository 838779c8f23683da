package predictor

import (
	"auroramart/internal/model"
)

// numericFeatures is the count of leading non-categorical columns:
// age, household size, has-children flag, monthly income.
const numericFeatures = 4

// featureVector encodes a profile into the fixed-order vector the tree was
// trained on. Categorical values outside the training vocabulary encode as
// an all-zero one-hot block: unrecognised categories mean "none of the
// known values", they are not an error.
func (a *Artifact) featureVector(p model.CustomerProfile) []float64 {
	features := make([]float64, 0, a.FeatureCount())

	features = append(features, float64(p.Age))
	features = append(features, float64(p.HouseholdSize))
	if p.HasChildren {
		features = append(features, 1)
	} else {
		features = append(features, 0)
	}
	features = append(features, p.MonthlyIncome.InexactFloat64())

	features = appendOneHot(features, a.Vocabulary.Genders, p.Gender)
	features = appendOneHot(features, a.Vocabulary.EmploymentStatuses, p.EmploymentStatus)
	features = appendOneHot(features, a.Vocabulary.Occupations, p.Occupation)
	features = appendOneHot(features, a.Vocabulary.Educations, p.Education)

	return features
}

// appendOneHot appends one column per vocabulary entry, at most one of them
// set to 1.
func appendOneHot(features []float64, vocabulary []string, value string) []float64 {
	for _, known := range vocabulary {
		if value == known {
			features = append(features, 1)
		} else {
			features = append(features, 0)
		}
	}
	return features
}
