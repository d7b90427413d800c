package storefront

// DefaultProducts returns the built-in studio portfolio. Applications can
// replace or extend it through a catalog manifest.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:           "proj-001",
			Title:        "E-commerce Superstore",
			Description:  "A blazing fast online store with Stripe payments, admin panel, and inventory management.",
			Price:        50000,
			Category:     "E-commerce",
			Image:        "/static/img/proj-001.jpg",
			Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
			Features:     []string{"Product catalog", "Shopping cart", "Payment gateway", "Order management"},
		},
		{
			ID:           "proj-002",
			Title:        "Corporate Landing Page",
			Description:  "Conversion-focused landing page designed to turn visitors into leads.",
			Price:        15000,
			Category:     "Landing Pages",
			Image:        "/static/img/proj-002.jpg",
			Technologies: []string{"HTML5", "CSS3", "JavaScript", "Tailwind"},
			Features:     []string{"Responsive design", "Contact form", "SEO optimized"},
		},
		{
			ID:           "proj-003",
			Title:        "Restaurant Booking App",
			Description:  "Elegant table reservation system with digital menu and customer reviews.",
			Price:        35000,
			Category:     "Web Apps",
			Image:        "/static/img/proj-003.jpg",
			Technologies: []string{"Vue.js", "Firebase", "Bootstrap"},
			Features:     []string{"Table booking", "Menu management", "Customer reviews"},
		},
		{
			ID:           "proj-004",
			Title:        "Creative Portfolio",
			Description:  "Minimalist portfolio to showcase your photography or design work.",
			Price:        12000,
			Category:     "Landing Pages",
			Image:        "/static/img/proj-004.jpg",
			Technologies: []string{"HTML", "CSS", "JavaScript"},
			Features:     []string{"Gallery showcase", "About section", "Contact form"},
		},
		{
			ID:           "proj-005",
			Title:        "Fitness Tracker Dashboard",
			Description:  "SaaS dashboard for tracking workouts, nutrition, and personal records.",
			Price:        45000,
			Category:     "Web Apps",
			Image:        "/static/img/proj-005.jpg",
			Technologies: []string{"React", "Chart.js", "Express"},
			Features:     []string{"Workout tracking", "Nutrition planner", "Analytics"},
		},
		{
			ID:           "proj-006",
			Title:        "Real Estate Platform",
			Description:  "Property listing engine with map integration and agent profiles.",
			Price:        60000,
			Category:     "Web Apps",
			Image:        "/static/img/proj-006.jpg",
			Technologies: []string{"Next.js", "MongoDB", "Google Maps"},
			Features:     []string{"Property listings", "Advanced search", "Agent dashboard"},
		},
	}
}

// DefaultCatalog builds a catalog from the built-in portfolio.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(DefaultProducts())
	if err != nil {
		// The built-in list is validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return catalog
}
