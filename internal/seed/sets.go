package seed

var sampleItems = []item{
	{
		name:          "California Almonds",
		category:      "dry-fruits",
		description:   "Crunchy whole almonds, naturally sweet and rich in vitamin E.",
		price:         64900,
		originalPrice: 74900,
		badge:         "Bestseller",
		origin:        "California, USA",
		weight:        "500 g",
		shelfLife:     "9 months",
		ingredients:   "Almonds",
		inStock:       true,
		stock:         120,
		calories:      579,
		protein:       "21 g",
		fat:           "50 g",
		carbs:         "22 g",
		fiber:         "12.5 g",
	},
	{
		name:        "Kashmiri Saffron",
		category:    "premium-spices",
		description: "Hand-picked Mongra saffron threads with deep crimson colour and strong aroma.",
		price:       49900,
		badge:       "Premium",
		origin:      "Pampore, Kashmir",
		weight:      "1 g",
		shelfLife:   "24 months",
		ingredients: "Saffron stigmas",
		inStock:     true,
		stock:       40,
	},
	{
		name:        "Medjool Dates",
		category:    "dates",
		description: "Soft, caramel-like jumbo dates.",
		price:       89900,
		origin:      "Jordan Valley",
		weight:      "1 kg",
		shelfLife:   "12 months",
		ingredients: "Dates",
		inStock:     true,
		stock:       60,
		calories:    277,
		protein:     "1.8 g",
		fat:         "0.2 g",
		carbs:       "75 g",
		fiber:       "6.7 g",
	},
	{
		name:        "Green Cardamom",
		category:    "spices",
		description: "Bold 8 mm pods from the Western Ghats.",
		price:       32900,
		origin:      "Idukki, Kerala",
		weight:      "100 g",
		shelfLife:   "18 months",
		ingredients: "Green cardamom pods",
		inStock:     true,
		stock:       80,
	},
	{
		name:          "Roasted Salted Pistachios",
		category:      "nuts",
		description:   "In-shell pistachios, slow roasted with a pinch of sea salt.",
		price:         54900,
		originalPrice: 59900,
		origin:        "Iran",
		weight:        "250 g",
		shelfLife:     "6 months",
		ingredients:   "Pistachios, salt",
		inStock:       true,
		stock:         75,
		calories:      562,
		protein:       "20 g",
		fat:           "45 g",
		carbs:         "28 g",
		fiber:         "10 g",
	},
	{
		name:        "Festive Gift Box",
		category:    "gift-boxes",
		description: "Almonds, cashews, pistachios and dates in a lacquered keepsake box.",
		price:       189900,
		badge:       "Limited",
		weight:      "800 g",
		shelfLife:   "6 months",
		ingredients: "Almonds, cashews, pistachios, dates",
		isNew:       true,
		inStock:     true,
		stock:       25,
	},
}

var curatedItems = []item{
	{
		name:          "Premium Cashews W240",
		category:      "dry-fruits",
		description:   "Large, creamy whole cashews graded W240.",
		price:         59900,
		originalPrice: 69900,
		badge:         "Bestseller",
		origin:        "Goa",
		weight:        "500 g",
		shelfLife:     "9 months",
		ingredients:   "Cashew kernels",
		inStock:       true,
		stock:         150,
		calories:      553,
		protein:       "18 g",
		fat:           "44 g",
		carbs:         "30 g",
		fiber:         "3.3 g",
	},
	{
		name:        "Chilean Walnut Kernels",
		category:    "dry-fruits",
		description: "Light halves with a mild, buttery taste.",
		price:       79900,
		origin:      "Chile",
		weight:      "500 g",
		shelfLife:   "6 months",
		ingredients: "Walnut kernels",
		inStock:     true,
		stock:       70,
		calories:    654,
		protein:     "15 g",
		fat:         "65 g",
		carbs:       "14 g",
		fiber:       "6.7 g",
	},
	{
		name:        "Afghan Golden Raisins",
		category:    "dry-fruits",
		description: "Plump seedless raisins dried in the shade.",
		price:       29900,
		origin:      "Kandahar, Afghanistan",
		weight:      "500 g",
		shelfLife:   "12 months",
		ingredients: "Raisins",
		inStock:     true,
		stock:       200,
	},
	{
		name:        "Turkish Dried Apricots",
		category:    "dry-fruits",
		description: "Sun-dried, unsulphured apricots with a tangy finish.",
		price:       44900,
		origin:      "Malatya, Turkey",
		weight:      "400 g",
		shelfLife:   "12 months",
		ingredients: "Apricots",
		isNew:       true,
		inStock:     true,
		stock:       90,
	},
	{
		name:          "Dried Anjeer Figs",
		category:      "dry-fruits",
		description:   "Soft figs with a honeyed centre.",
		price:         74900,
		originalPrice: 84900,
		origin:        "Afghanistan",
		weight:        "400 g",
		shelfLife:     "9 months",
		ingredients:   "Figs",
		inStock:       false,
	},
	{
		name:        "Kashmiri Saffron",
		category:    "premium-spices",
		description: "Hand-picked Mongra saffron threads with deep crimson colour and strong aroma.",
		price:       49900,
		badge:       "Premium",
		origin:      "Pampore, Kashmir",
		weight:      "1 g",
		shelfLife:   "24 months",
		ingredients: "Saffron stigmas",
		inStock:     true,
		stock:       40,
	},
	{
		name:        "Tellicherry Black Pepper",
		category:    "premium-spices",
		description: "Extra-bold peppercorns from the Malabar coast.",
		price:       24900,
		origin:      "Thalassery, Kerala",
		weight:      "200 g",
		shelfLife:   "24 months",
		ingredients: "Black peppercorns",
		inStock:     true,
		stock:       110,
	},
	{
		name:        "Ceylon Cinnamon Quills",
		category:    "premium-spices",
		description: "Delicate, paper-thin true cinnamon.",
		price:       27900,
		origin:      "Sri Lanka",
		weight:      "100 g",
		shelfLife:   "24 months",
		ingredients: "Cinnamon bark",
		isNew:       true,
		inStock:     true,
		stock:       65,
	},
	{
		name:        "Lakadong Turmeric Powder",
		category:    "spices",
		description: "High-curcumin turmeric from the Jaintia hills.",
		price:       19900,
		origin:      "Meghalaya",
		weight:      "250 g",
		shelfLife:   "18 months",
		ingredients: "Turmeric",
		inStock:     true,
		stock:       140,
	},
	{
		name:        "Kashmiri Chilli Powder",
		category:    "spices",
		description: "Vivid red colour with gentle heat.",
		price:       17900,
		origin:      "Kashmir",
		weight:      "200 g",
		shelfLife:   "12 months",
		ingredients: "Kashmiri chillies",
		inStock:     true,
		stock:       130,
	},
	{
		name:        "Whole Cumin Seeds",
		category:    "spices",
		description: "Aromatic cumin, machine cleaned and sorted.",
		price:       12900,
		origin:      "Unjha, Gujarat",
		weight:      "250 g",
		shelfLife:   "18 months",
		ingredients: "Cumin seeds",
		inStock:     true,
		stock:       160,
	},
	{
		name:        "Zanzibar Cloves",
		category:    "spices",
		description: "Oil-rich whole cloves.",
		price:       21900,
		origin:      "Zanzibar",
		weight:      "100 g",
		shelfLife:   "24 months",
		ingredients: "Cloves",
		inStock:     false,
	},
	{
		name:        "Green Cardamom",
		category:    "spices",
		description: "Bold 8 mm pods from the Western Ghats.",
		price:       32900,
		origin:      "Idukki, Kerala",
		weight:      "100 g",
		shelfLife:   "18 months",
		ingredients: "Green cardamom pods",
		inStock:     true,
		stock:       80,
	},
	{
		name:        "Macadamia Nuts",
		category:    "nuts",
		description: "Buttery macadamias, lightly roasted.",
		price:       129900,
		badge:       "New",
		origin:      "Australia",
		weight:      "250 g",
		shelfLife:   "6 months",
		ingredients: "Macadamia nuts",
		isNew:       true,
		inStock:     true,
		stock:       30,
		calories:    718,
		protein:     "7.9 g",
		fat:         "76 g",
		carbs:       "14 g",
		fiber:       "8.6 g",
	},
	{
		name:        "Pumpkin Seeds",
		category:    "seeds",
		description: "Raw, hulled pepitas.",
		price:       22900,
		weight:      "250 g",
		shelfLife:   "9 months",
		ingredients: "Pumpkin seeds",
		inStock:     true,
		stock:       100,
		calories:    559,
		protein:     "30 g",
		fat:         "49 g",
		carbs:       "11 g",
		fiber:       "6 g",
	},
	{
		name:        "Chia Seeds",
		category:    "seeds",
		description: "Black chia seeds, cleaned and sortexed.",
		price:       18900,
		origin:      "Mexico",
		weight:      "250 g",
		shelfLife:   "12 months",
		ingredients: "Chia seeds",
		inStock:     true,
		stock:       95,
	},
	{
		name:        "Medjool Dates",
		category:    "dates",
		description: "Soft, caramel-like jumbo dates.",
		price:       89900,
		origin:      "Jordan Valley",
		weight:      "1 kg",
		shelfLife:   "12 months",
		ingredients: "Dates",
		inStock:     true,
		stock:       60,
		calories:    277,
		protein:     "1.8 g",
		fat:         "0.2 g",
		carbs:       "75 g",
		fiber:       "6.7 g",
	},
	{
		name:        "Ajwa Dates",
		category:    "dates",
		description: "Dark, soft dates from Madinah.",
		price:       149900,
		badge:       "Premium",
		origin:      "Madinah, Saudi Arabia",
		weight:      "500 g",
		shelfLife:   "12 months",
		ingredients: "Dates",
		inStock:     true,
		stock:       20,
	},
	{
		name:          "Spice Route Gift Box",
		category:      "gift-boxes",
		description:   "Saffron, cardamom, cinnamon and pepper in a wooden chest.",
		price:         249900,
		originalPrice: 279900,
		badge:         "Limited",
		weight:        "450 g",
		shelfLife:     "18 months",
		ingredients:   "Saffron, cardamom, cinnamon, black pepper",
		isNew:         true,
		inStock:       true,
		stock:         15,
	},
	{
		name:        "Festive Gift Box",
		category:    "gift-boxes",
		description: "Almonds, cashews, pistachios and dates in a lacquered keepsake box.",
		price:       189900,
		badge:       "Limited",
		weight:      "800 g",
		shelfLife:   "6 months",
		ingredients: "Almonds, cashews, pistachios, dates",
		isNew:       true,
		inStock:     true,
		stock:       25,
	},
}
