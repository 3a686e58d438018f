package services

import "github.com/zatekoja/hospitallocator/internal/domain/entities"

func rating(v float64) *float64 { return &v }

// SampleHospitals returns fresh copies of the demo data loaded by SeedHospitals
func SampleHospitals() []*entities.Hospital {
	weekdays := func(week, saturday, sunday string) entities.OperatingHours {
		return entities.OperatingHours{
			Monday:    week,
			Tuesday:   week,
			Wednesday: week,
			Thursday:  week,
			Friday:    week,
			Saturday:  saturday,
			Sunday:    sunday,
		}
	}

	return []*entities.Hospital{
		{
			Name:           "City General Hospital",
			Address:        "123 Main St, Downtown",
			Phone:          "+1-555-0101",
			Email:          "info@citygeneral.com",
			Website:        "https://citygeneral.com",
			Latitude:       40.7128,
			Longitude:      -74.0060,
			Type:           entities.HospitalTypeGeneral,
			Services:       []string{"Emergency", "Surgery", "Cardiology", "Pediatrics"},
			Rating:         rating(4.2),
			IsEmergency:    true,
			OperatingHours: entities.AllDay("24/7"),
		},
		{
			Name:           "St. Mary's Medical Center",
			Address:        "456 Oak Ave, Midtown",
			Phone:          "+1-555-0102",
			Email:          "contact@stmarys.org",
			Website:        "https://stmarys.org",
			Latitude:       40.7589,
			Longitude:      -73.9851,
			Type:           entities.HospitalTypeGeneral,
			Services:       []string{"Emergency", "Maternity", "Oncology", "Orthopedics"},
			Rating:         rating(4.5),
			IsEmergency:    true,
			OperatingHours: entities.AllDay("24/7"),
		},
		{
			Name:           "Riverside Clinic",
			Address:        "789 River Rd, Riverside",
			Phone:          "+1-555-0103",
			Email:          "appointments@riverside.com",
			Latitude:       40.7282,
			Longitude:      -74.0776,
			Type:           entities.HospitalTypeClinic,
			Services:       []string{"General Practice", "Vaccinations", "Health Checkups"},
			Rating:         rating(4.0),
			OperatingHours: weekdays("8:00 AM - 6:00 PM", "9:00 AM - 2:00 PM", "Closed"),
		},
		{
			Name:           "Heart Specialty Center",
			Address:        "321 Cardiac Way, Medical District",
			Phone:          "+1-555-0104",
			Email:          "info@heartcenter.com",
			Website:        "https://heartcenter.com",
			Latitude:       40.7505,
			Longitude:      -73.9934,
			Type:           entities.HospitalTypeSpecialty,
			Services:       []string{"Cardiology", "Cardiac Surgery", "Heart Transplant"},
			Rating:         rating(4.8),
			OperatingHours: weekdays("7:00 AM - 7:00 PM", "8:00 AM - 4:00 PM", "Closed"),
		},
		{
			Name:           "Emergency Care Plus",
			Address:        "555 Quick St, Emergency District",
			Phone:          "+1-555-0105",
			Latitude:       40.7411,
			Longitude:      -74.0023,
			Type:           entities.HospitalTypeEmergency,
			Services:       []string{"Emergency Care", "Trauma", "Urgent Care"},
			Rating:         rating(4.1),
			IsEmergency:    true,
			OperatingHours: entities.AllDay("24/7"),
		},
	}
}
