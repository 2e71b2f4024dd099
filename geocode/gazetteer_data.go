package geocode

func place(name string, lat, lng float64) Place {
	return Place{Name: name, Coordinates: Coordinates{Lat: lat, Lng: lng}}
}

func district(name string, lat, lng float64, wards ...Place) DistrictEntry {
	return DistrictEntry{Place: place(name, lat, lng), Wards: wards}
}

func region(name string, lat, lng float64, districts ...DistrictEntry) RegionEntry {
	return RegionEntry{Place: place(name, lat, lng), Districts: districts}
}

// Approximate administrative centres.
var tanzania = []RegionEntry{
	region("Arusha", -3.3869, 36.6830,
		district("Arusha City", -3.3869, 36.6830,
			place("Sekei", -3.3650, 36.6850),
			place("Themi", -3.3800, 36.7000),
			place("Kaloleni", -3.3720, 36.6900),
			place("Sakina", -3.3600, 36.6500),
		),
		district("Arumeru", -3.3500, 36.8500, place("Usa River", -3.3667, 36.8500)),
		district("Karatu", -3.3400, 35.6700),
		district("Monduli", -3.3000, 36.4500),
		district("Ngorongoro", -2.6500, 35.5500),
		district("Longido", -2.7300, 36.6900),
	),
	region("Dar es Salaam", -6.7924, 39.2083,
		district("Ilala", -6.8300, 39.2300,
			place("Kariakoo", -6.8190, 39.2740),
			place("Upanga", -6.8080, 39.2840),
			place("Kisutu", -6.8170, 39.2880),
			place("Buguruni", -6.8350, 39.2450),
		),
		district("Kinondoni", -6.7700, 39.2500,
			place("Mikocheni", -6.7600, 39.2500),
			place("Msasani", -6.7450, 39.2750),
			place("Masaki", -6.7480, 39.2820),
			place("Oyster Bay", -6.7660, 39.2880),
			place("Tegeta", -6.6600, 39.2000),
			place("Kijitonyama", -6.7750, 39.2350),
		),
		district("Temeke", -6.8800, 39.2500,
			place("Kurasini", -6.8400, 39.2800),
			place("Mbagala", -6.9000, 39.2700),
		),
		district("Ubungo", -6.7900, 39.2000,
			place("Sinza", -6.7800, 39.2200),
			place("Mbezi", -6.7200, 39.1800),
		),
		district("Kigamboni", -6.8500, 39.3100),
	),
	region("Dodoma", -6.1630, 35.7516,
		district("Dodoma City", -6.1630, 35.7516, place("Makole", -6.1700, 35.7600)),
		district("Bahi", -5.9600, 35.3200),
		district("Chamwino", -6.2500, 35.9000),
		district("Kondoa", -4.9000, 35.7833),
		district("Mpwapwa", -6.3500, 36.4800),
		district("Kongwa", -6.2000, 36.4167),
	),
	region("Geita", -2.8700, 32.2300,
		district("Geita", -2.8700, 32.2300),
		district("Chato", -2.6333, 31.7667),
		district("Bukombe", -3.4000, 32.0000),
	),
	region("Iringa", -7.7700, 35.6900,
		district("Iringa Municipal", -7.7700, 35.6900),
		district("Kilolo", -7.9000, 36.0000),
		district("Mufindi", -8.6000, 35.3000),
	),
	region("Kagera", -1.3300, 31.8100,
		district("Bukoba", -1.3300, 31.8100),
		district("Karagwe", -1.5500, 31.0500),
		district("Muleba", -1.8333, 31.6500),
		district("Ngara", -2.5000, 30.6500),
	),
	region("Katavi", -6.3500, 31.0667,
		district("Mpanda", -6.3500, 31.0667),
		district("Mlele", -6.9000, 31.7000),
	),
	region("Kigoma", -4.8770, 29.6260,
		district("Kigoma Ujiji", -4.8770, 29.6260),
		district("Kasulu", -4.5667, 30.1000),
		district("Kibondo", -3.5833, 30.7000),
	),
	region("Kilimanjaro", -3.3348, 37.3404,
		district("Moshi", -3.3348, 37.3404),
		district("Hai", -3.2000, 37.2500),
		district("Rombo", -3.1667, 37.5500),
		district("Same", -4.0667, 37.7333),
		district("Mwanga", -3.6667, 37.5833),
	),
	region("Lindi", -9.9970, 39.7140,
		district("Lindi", -9.9970, 39.7140),
		district("Kilwa", -8.9167, 39.5167),
		district("Nachingwea", -10.3667, 38.7667),
		district("Ruangwa", -10.0667, 38.9333),
		district("Liwale", -9.7667, 37.9333),
	),
	region("Manyara", -4.2167, 35.7500,
		district("Babati", -4.2167, 35.7500),
		district("Hanang", -4.4500, 35.4000),
		district("Mbulu", -3.8500, 35.5500),
		district("Kiteto", -5.2500, 37.0500),
		district("Simanjiro", -4.0000, 36.6000),
	),
	region("Mara", -1.5000, 33.8000,
		district("Musoma", -1.5000, 33.8000),
		district("Tarime", -1.3500, 34.3667),
		district("Serengeti", -2.0000, 34.8000),
		district("Bunda", -2.0000, 33.8667),
		district("Rorya", -1.3500, 34.0000),
	),
	region("Mbeya", -8.9000, 33.4500,
		district("Mbeya City", -8.9000, 33.4500),
		district("Kyela", -9.5833, 33.8667),
		district("Rungwe", -9.1500, 33.6500),
		district("Chunya", -8.5333, 33.4167),
		district("Mbarali", -8.6000, 34.3500),
	),
	region("Morogoro", -6.8210, 37.6610,
		district("Morogoro Municipal", -6.8210, 37.6610),
		district("Kilosa", -6.8333, 36.9833),
		district("Kilombero", -8.1000, 36.7000),
		district("Mvomero", -6.3000, 37.4500),
		district("Ulanga", -8.9833, 36.6833),
	),
	region("Mtwara", -10.2736, 40.1828,
		district("Mtwara", -10.2736, 40.1828),
		district("Masasi", -10.7167, 38.8000),
		district("Newala", -10.9500, 39.2833),
		district("Tandahimba", -10.7500, 39.6333),
	),
	region("Mwanza", -2.5164, 32.9175,
		district("Nyamagana", -2.5200, 32.9000),
		district("Ilemela", -2.4500, 32.9000, place("Kirumba", -2.5000, 32.9100)),
		district("Sengerema", -2.6500, 32.6500),
		district("Magu", -2.5833, 33.4333),
		district("Kwimba", -2.9000, 33.4500),
		district("Ukerewe", -2.0500, 33.0333),
	),
	region("Njombe", -9.3333, 34.7667,
		district("Njombe", -9.3333, 34.7667),
		district("Makete", -9.2833, 34.1667),
		district("Ludewa", -10.0000, 34.6667),
		district("Wanging'ombe", -9.0000, 34.6000),
	),
	region("Pemba North", -5.0300, 39.7750,
		district("Wete", -5.0300, 39.7750),
		district("Micheweni", -4.9667, 39.8333),
	),
	region("Pemba South", -5.2500, 39.7667,
		district("Chake Chake", -5.2500, 39.7667),
		district("Mkoani", -5.3667, 39.6500),
	),
	region("Pwani", -6.7667, 38.9167,
		district("Kibaha", -6.7667, 38.9167),
		district("Bagamoyo", -6.4333, 38.9000),
		district("Mkuranga", -7.1167, 39.2000),
		district("Rufiji", -7.9500, 38.9000),
		district("Mafia", -7.9167, 39.6667),
	),
	region("Rukwa", -7.9667, 31.6167,
		district("Sumbawanga", -7.9667, 31.6167),
		district("Nkasi", -7.3500, 31.1000),
		district("Kalambo", -8.6000, 31.3000),
	),
	region("Ruvuma", -10.6833, 35.6500,
		district("Songea", -10.6833, 35.6500),
		district("Mbinga", -10.9333, 35.0167),
		district("Tunduru", -11.1000, 37.3500),
		district("Namtumbo", -10.5500, 36.1000),
	),
	region("Shinyanga", -3.6619, 33.4232,
		district("Shinyanga", -3.6619, 33.4232),
		district("Kahama", -3.8333, 32.6000),
		district("Kishapu", -3.6167, 33.8667),
	),
	region("Simiyu", -2.8333, 34.1500,
		district("Bariadi", -2.8333, 34.1500),
		district("Maswa", -3.1833, 33.7833),
		district("Meatu", -3.6000, 34.5500),
	),
	region("Singida", -4.8167, 34.7500,
		district("Singida", -4.8167, 34.7500),
		district("Manyoni", -5.7500, 34.8333),
		district("Iramba", -4.3000, 34.4000),
		district("Ikungi", -5.0500, 34.8000),
	),
	region("Songwe", -9.1167, 32.9333,
		district("Mbozi", -9.1167, 32.9333),
		district("Ileje", -9.4500, 33.3000),
		district("Momba", -8.8500, 32.4500),
	),
	region("Tabora", -5.0167, 32.8000,
		district("Tabora", -5.0167, 32.8000),
		district("Igunga", -4.2833, 33.8833),
		district("Nzega", -4.2167, 33.1833),
		district("Urambo", -5.0667, 32.0500),
		district("Sikonge", -5.6333, 32.7667),
	),
	region("Tanga", -5.0689, 39.0988,
		district("Tanga City", -5.0689, 39.0988),
		district("Muheza", -5.1667, 38.7833),
		district("Korogwe", -5.1500, 38.4667),
		district("Lushoto", -4.7833, 38.2833),
		district("Pangani", -5.4333, 38.9667),
		district("Handeni", -5.4333, 38.0167),
	),
	region("Zanzibar North", -5.9333, 39.2833,
		district("Kaskazini A", -5.8667, 39.2833),
		district("Kaskazini B", -5.9500, 39.2833),
	),
	region("Zanzibar South", -6.2667, 39.4667,
		district("Kati", -6.1167, 39.3333),
		district("Kusini", -6.3000, 39.4500),
	),
	region("Zanzibar Urban West", -6.1659, 39.2026,
		district("Mjini", -6.1659, 39.1989, place("Stone Town", -6.1622, 39.1921)),
		district("Magharibi", -6.2000, 39.2333),
	),
}
