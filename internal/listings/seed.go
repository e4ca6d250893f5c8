package listings

// sampleData is written to a fresh data file on first run.
func sampleData() dataFile {
	return dataFile{
		Users: []User{
			{Email: "dana@example.com", Name: "Dana Whitfield", Team: "Downtown", Admin: true},
			{Email: "lee@example.com", Name: "Lee Carver", Team: "Downtown"},
			{Email: "sam@example.com", Name: "Sam Okafor", Team: "Uptown"},
			{Email: "priya@example.com", Name: "Priya Raman", Team: "Uptown", Admin: true},
			{Email: "alex@example.com", Name: "Alex Moreau", Team: "Lakeside"},
		},
		Listings: []Listing{
			{
				Title: "Harbor View Loft", Address: "12 Wharf St", City: "Portland",
				Price: 685000, Bedrooms: 2, Status: StatusActive,
				Owner: "dana@example.com", Team: "Downtown",
				Description: "# Harbor View Loft\n\nConverted warehouse loft with **exposed brick** and floor-to-ceiling windows.\n\n- 2 bedrooms, 2 baths\n- Deeded parking\n- Rooftop deck shared with 6 units",
			},
			{
				Title: "Maple Street Bungalow", Address: "418 Maple St", City: "Portland",
				Price: 429000, Bedrooms: 3, Status: StatusPending,
				Owner: "lee@example.com", Team: "Downtown",
				Description: "# Maple Street Bungalow\n\n1920s craftsman on a quiet block. New roof in 2023.\n\n> Offer accepted, inspection scheduled.",
			},
			{
				Title: "Riverside Office Suite", Address: "900 River Rd, Suite 300", City: "Salem",
				Price: 1250000, Bedrooms: 0, Status: StatusActive,
				Owner: "dana@example.com", Team: "Downtown",
				Description: "# Riverside Office Suite\n\nClass A office space, 6,200 sq ft.\n\n| Floor | Area |\n|---|---|\n| 3 | 6,200 sq ft |",
			},
			{
				Title: "Hilltop Colonial", Address: "77 Summit Ave", City: "Eugene",
				Price: 815000, Bedrooms: 4, Status: StatusSold,
				Owner: "sam@example.com", Team: "Uptown",
				Description: "# Hilltop Colonial\n\nClassic center-hall colonial with valley views.\n\nClosed at *3% over asking*.",
			},
			{
				Title: "Garden Court Condo", Address: "5 Garden Ct #4B", City: "Eugene",
				Price: 312500, Bedrooms: 1, Status: StatusActive,
				Owner: "priya@example.com", Team: "Uptown",
				Description: "# Garden Court Condo\n\nTop-floor unit facing the courtyard. HOA covers water and trash.",
			},
			{
				Title: "Lakeshore Cabin", Address: "3 Pine Hollow Rd", City: "Bend",
				Price: 540000, Bedrooms: 3, Status: StatusOffMarket,
				Owner: "alex@example.com", Team: "Lakeside",
				Description: "# Lakeshore Cabin\n\nSeasonal cabin with private dock. Owner paused the listing until spring.",
			},
			{
				Title: "Mill District Retail", Address: "210 Mill St", City: "Bend",
				Price: 980000, Bedrooms: 0, Status: StatusActive,
				Owner: "alex@example.com", Team: "Lakeside",
				Description: "# Mill District Retail\n\nCorner retail bay with 40 ft of frontage.\n\n- Zoned mixed use\n- Tenant lease through 2027",
			},
			{
				Title: "Oak Terrace Townhome", Address: "64 Oak Terrace", City: "Salem",
				Price: 398000, Bedrooms: 3, Status: StatusActive,
				Owner: "lee@example.com", Team: "Downtown",
				Description: "# Oak Terrace Townhome\n\nEnd unit with a fenced yard and attached garage.",
			},
		},
	}
}
