package catalog

import "github.com/mark3labs/listwiz/internal/listing"

var samplePhotos = []listing.SamplePhoto{
	{
		ID:       "sample-photo-1",
		URL:      "https://images.unsplash.com/photo-1505692794403-35b0fd4d731b?auto=format&fit=crop&w=1600&q=80",
		FileName: "skyline-day.jpg",
		Label:    "City skyline during the day",
		Tag:      "Exterior",
	},
	{
		ID:       "sample-photo-2",
		URL:      "https://images.unsplash.com/photo-1505691723518-36a5ac3be353?auto=format&fit=crop&w=1600&q=80",
		FileName: "skyline-night.jpg",
		Label:    "City skyline at night",
		Tag:      "Exterior",
	},
	{
		ID:       "sample-photo-3",
		URL:      "https://images.unsplash.com/photo-1512914890250-353c57ed1eb8?auto=format&fit=crop&w=1600&q=80",
		FileName: "lobby.jpg",
		Label:    "Lobby entrance with seating",
		Tag:      "Interior",
	},
	{
		ID:       "sample-photo-4",
		URL:      "https://images.unsplash.com/photo-1484154218962-a197022b5858?auto=format&fit=crop&w=1600&q=80",
		FileName: "kitchen.jpg",
		Label:    "Modern kitchen with island",
		Tag:      "Interior",
	},
	{
		ID:       "sample-photo-5",
		URL:      "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?auto=format&fit=crop&w=1600&q=80",
		FileName: "pool.jpg",
		Label:    "Infinity pool with skyline view",
		Tag:      "Facilities",
	},
	{
		ID:       "sample-photo-6",
		URL:      "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&w=1600&q=80",
		FileName: "living-room.jpg",
		Label:    "Living room with floor-to-ceiling windows",
		Tag:      "Interior",
	},
	{
		ID:       "sample-photo-7",
		URL:      "https://images.unsplash.com/photo-1493809842364-78817add7ffb?auto=format&fit=crop&w=1600&q=80",
		FileName: "bedroom.jpg",
		Label:    "Master bedroom with natural light",
		Tag:      "Interior",
	},
	{
		ID:       "sample-photo-8",
		URL:      "https://images.unsplash.com/photo-1522158637959-30385a09e0da?auto=format&fit=crop&w=1600&q=80",
		FileName: "balcony.jpg",
		Label:    "Balcony overlooking the city",
		Tag:      "Exterior",
	},
	{
		ID:       "sample-photo-9",
		URL:      "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?auto=format&fit=crop&w=1600&q=80",
		FileName: "bathroom.jpg",
		Label:    "Ensuite bathroom with marble finishes",
		Tag:      "Interior",
	},
	{
		ID:       "sample-photo-10",
		URL:      "https://images.unsplash.com/photo-1590490360182-c33d57733427?auto=format&fit=crop&w=1600&q=80",
		FileName: "fitness.jpg",
		Label:    "Fitness centre with modern equipment",
		Tag:      "Facilities",
	},
}

var projectPhotos = []listing.SamplePhoto{
	{
		ID:       "project-photo-1",
		URL:      "https://images.unsplash.com/photo-1505691723518-36a5ac3be353?auto=format&fit=crop&w=1200&q=80",
		FileName: "project-tower-1.jpg",
		Label:    "Developer-provided exterior shot",
		Tag:      "Project",
	},
	{
		ID:       "project-photo-2",
		URL:      "https://images.unsplash.com/photo-1491553895911-0055eca6402d?auto=format&fit=crop&w=1200&q=80",
		FileName: "project-tower-2.jpg",
		Label:    "Facade with landscaping",
		Tag:      "Project",
	},
	{
		ID:       "project-photo-3",
		URL:      "https://images.unsplash.com/photo-1494526585095-c41746248156?auto=format&fit=crop&w=1200&q=80",
		FileName: "project-tower-3.jpg",
		Label:    "View from street level",
		Tag:      "Project",
	},
}

// SamplePhotos returns the sample photo library in its fixed order.
func SamplePhotos() []listing.SamplePhoto {
	return append([]listing.SamplePhoto(nil), samplePhotos...)
}

// ProjectPhotos returns the curated developer photo library.
func ProjectPhotos() []listing.SamplePhoto {
	return append([]listing.SamplePhoto(nil), projectPhotos...)
}
