package services

import (
	"sort"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

func withDistance(h *entities.Hospital, km float64) *entities.HospitalWithDistance {
	d := km
	return &entities.HospitalWithDistance{Hospital: *h, Distance: &d}
}

// sortByDistance orders results nearest first. Ties keep their input order.
func sortByDistance(results []*entities.HospitalWithDistance) {
	sort.SliceStable(results, func(i, j int) bool {
		return distanceOf(results[i]) < distanceOf(results[j])
	})
}

func distanceOf(h *entities.HospitalWithDistance) float64 {
	if h.Distance == nil {
		return 0
	}
	return *h.Distance
}
