// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package fixtures

import (
	"strings"
	"unicode"

	"github.com/tomtom215/reliefmap/internal/models"
)

type seedRegion struct {
	slug       string
	population int64
	need       models.NeedLevel
	lat, lng   float64
}

var seedCountries = []models.Country{
	{ID: "syria", Name: "Syria", Population: 21500000, NeedLevel: models.NeedHigh},
	{ID: "yemen", Name: "Yemen", Population: 33000000, NeedLevel: models.NeedHigh},
	{ID: "sudan", Name: "Sudan", Population: 45000000, NeedLevel: models.NeedHigh},
	{ID: "afghanistan", Name: "Afghanistan", Population: 40000000, NeedLevel: models.NeedHigh},
	{ID: "somalia", Name: "Somalia", Population: 17000000, NeedLevel: models.NeedHigh},
	{ID: "palestine", Name: "Palestine", Population: 5000000, NeedLevel: models.NeedHigh},
	{ID: "myanmar", Name: "Myanmar", Population: 54000000, NeedLevel: models.NeedMedium},
	{ID: "ethiopia", Name: "Ethiopia", Population: 120000000, NeedLevel: models.NeedMedium},
}

// Centroids are approximate and only used for map placement.
var seedRegions = map[string][]seedRegion{
	"syria": {
		{"aleppo", 4500000, models.NeedHigh, 36.20, 37.16},
		{"idlib", 3000000, models.NeedHigh, 35.93, 36.63},
		{"damascus", 2500000, models.NeedMedium, 33.51, 36.29},
		{"homs", 1500000, models.NeedMedium, 34.73, 36.71},
		{"raqqa", 900000, models.NeedHigh, 35.95, 39.01},
	},
	"yemen": {
		{"sanaa", 4000000, models.NeedHigh, 15.37, 44.19},
		{"aden", 1200000, models.NeedMedium, 12.79, 45.02},
		{"taiz", 2800000, models.NeedHigh, 13.58, 44.02},
		{"hodeidah", 2000000, models.NeedHigh, 14.80, 42.95},
		{"marib", 1000000, models.NeedHigh, 15.46, 45.32},
	},
	"sudan": {
		{"khartoum", 6000000, models.NeedHigh, 15.50, 32.56},
		{"darfur", 9000000, models.NeedHigh, 13.50, 24.00},
		{"kordofan", 4000000, models.NeedHigh, 12.50, 30.00},
		{"blue-nile", 1200000, models.NeedMedium, 11.30, 34.10},
	},
	"afghanistan": {
		{"kabul", 4500000, models.NeedHigh, 34.56, 69.21},
		{"herat", 2000000, models.NeedMedium, 34.35, 62.20},
		{"kandahar", 1500000, models.NeedHigh, 31.61, 65.71},
		{"mazar", 1000000, models.NeedMedium, 36.71, 67.11},
	},
	"somalia": {
		{"mogadishu", 2500000, models.NeedHigh, 2.05, 45.32},
		{"baidoa", 800000, models.NeedHigh, 3.12, 43.65},
		{"hargeisa", 1200000, models.NeedLow, 9.56, 44.06},
		{"kismayo", 500000, models.NeedHigh, -0.36, 42.55},
	},
	"palestine": {
		{"gaza", 2300000, models.NeedHigh, 31.50, 34.47},
		{"west-bank-north", 1500000, models.NeedMedium, 32.22, 35.25},
		{"west-bank-south", 1200000, models.NeedMedium, 31.53, 35.10},
	},
	"myanmar": {
		{"rakhine", 3000000, models.NeedHigh, 20.15, 92.90},
		{"yangon", 7000000, models.NeedLow, 16.87, 96.20},
		{"mandalay", 1500000, models.NeedLow, 21.96, 96.09},
	},
	"ethiopia": {
		{"tigray", 6000000, models.NeedHigh, 14.03, 38.32},
		{"amhara", 20000000, models.NeedMedium, 11.35, 37.98},
		{"oromia", 35000000, models.NeedMedium, 7.55, 40.63},
		{"somali-region", 5000000, models.NeedHigh, 6.66, 43.79},
	},
}

var organizationNames = []string{
	"World Food Programme", "Médecins Sans Frontières", "ICRC", "UN Refugee Agency",
	"UNICEF", "Oxfam", "International Rescue Committee", "World Health Organization",
	"Save the Children", "Islamic Relief", "CARE International", "Mercy Corps",
	"Norwegian Refugee Council", "Action Against Hunger", "Direct Relief",
}

var slugReplacer = strings.NewReplacer(" ", "-", "é", "e", "ç", "c")

// Countries returns the seed countries.
func Countries() []models.Country {
	return append([]models.Country(nil), seedCountries...)
}

// Regions returns the seed regions in country order. Region ids are
// "<country>-<slug>".
func Regions() []models.Region {
	var regions []models.Region
	for _, c := range seedCountries {
		for _, sr := range seedRegions[c.ID] {
			regions = append(regions, models.Region{
				ID:         c.ID + "-" + sr.slug,
				CountryID:  c.ID,
				Name:       displayName(sr.slug),
				Centroid:   &models.LatLng{Lat: sr.lat, Lng: sr.lng},
				Population: sr.population,
				NeedLevel:  sr.need,
			})
		}
	}
	return regions
}

// Organizations returns the seed organizations with slug ids.
func Organizations() []models.Organization {
	orgs := make([]models.Organization, len(organizationNames))
	for i, name := range organizationNames {
		orgs[i] = models.Organization{ID: OrganizationID(name), Name: name}
	}
	return orgs
}

// OrganizationID lowercases name, hyphenates spaces and folds é and ç. Other
// accents are kept, so ids match files produced by the demo data generator.
func OrganizationID(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

// displayName turns "west-bank-north" into "West Bank North".
func displayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
