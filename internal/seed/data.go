package seed

import "github.com/Zachkp/portfolio/internal/schema"

// TournamentProjectLink is where the tournament management project points.
// Stores seeded before the paper was published carry "#" instead.
const TournamentProjectLink = "https://ijcrt.org/"

const tournamentTitleMarker = "Tournament Management"

var skills = []schema.InsertSkill{
	{Name: "Python", Category: schema.CategoryLanguages, Proficiency: schema.Int(90)},
	{Name: "C", Category: schema.CategoryLanguages, Proficiency: schema.Int(80)},
	{Name: "Agentic AI", Category: schema.CategoryAIML, Proficiency: schema.Int(85)},
	{Name: "Machine Learning", Category: schema.CategoryAIML, Proficiency: schema.Int(85)},
	{Name: "Multi-Agent Systems", Category: schema.CategoryAIML, Proficiency: schema.Int(80)},
	{Name: "FastAPI", Category: schema.CategoryBackend, Proficiency: schema.Int(85)},
	{Name: "SQLite", Category: schema.CategoryBackend, Proficiency: schema.Int(80)},
	{Name: "SQL", Category: schema.CategoryBackend, Proficiency: schema.Int(80)},
	{Name: "AWS (Foundations)", Category: schema.CategoryCloud, Proficiency: schema.Int(70)},
	{Name: "Microsoft Azure (Basics)", Category: schema.CategoryCloud, Proficiency: schema.Int(60)},
	{Name: "IBM Cloud", Category: schema.CategoryCloud, Proficiency: schema.Int(60)},
}

var projects = []schema.InsertProject{
	{
		Title: "Agentic AI–Based Tournament Management System",
		Description: "Designed and developed an automated system for scheduling, team registration, and result tracking " +
			"using autonomous multi-agent systems. Built a scalable backend with FastAPI and SQLite. " +
			"Integrated NLP query assistant. Published in IJCRT.",
		Technologies: []string{"FastAPI", "SQLite", "Agentic AI", "Multi-Agent Systems", "Python"},
		Link:         schema.String(TournamentProjectLink),
	},
	{
		Title:        "Diet Recommendation System",
		Description:  "A machine learning based recommendation system that suggests personalized diet plans based on user health metrics.",
		Technologies: []string{"Python", "Machine Learning", "Streamlit", "Scikit-learn"},
		Link:         schema.String("https://github.com/HemalathaSV/diet-recommendation"),
	},
}

var publications = []schema.InsertPublication{
	{
		Title:       "Agentic AI-Based Tournament Management System",
		Publisher:   "International Journal of Creative Research and Development (IJCRT)",
		Description: "Research work peer-reviewed and published in IJCRT, demonstrating applied AI, system design, and automation.",
		Date:        "2025",
		Link:        schema.String("https://ijcrt.org/"),
	},
}

var education = []schema.InsertEducation{
	{
		Degree:      "B.E. in Computer Science & Engineering (AI & ML)",
		Institution: "Maharaja Institute of Technology, Mysuru",
		Year:        "2023 – 2027",
		Description: schema.String("Specializing in Artificial Intelligence and Machine Learning."),
	},
	{
		Degree:      "Pre-University Course (Science - PCMB)",
		Institution: "Jyothi Nivas PU College, Srirangapatna",
		Year:        "2023",
	},
	{
		Degree:      "SSLC",
		Institution: "Jyothi Nivas School, Srirangapatna",
		Year:        "2021",
	},
}

var certifications = []schema.InsertCertification{
	{Name: "Solutions Architecture Job Simulation", Issuer: "AWS APAC - Forage", Date: "Mar 2025"},
	{Name: "Tools for Data Science", Issuer: "IBM", Date: "Oct 2025"},
	{Name: "3 Day Agentic Ai Mini Project", Issuer: "Nov 2025", Date: "Nov 2025"},
	{Name: "Crash Course on Python", Issuer: "Google", Date: "Oct 2025"},
	{Name: "Software Engineering Job Simulation", Issuer: "Wells Fargo", Date: "Jul 2025"},
	{Name: "Gen AI powered Data Analytics Job Simulation", Issuer: "Tata", Date: "Sep 2025"},
	{Name: "Introduction to Cloud Computing", Issuer: "IBM", Date: "Oct 2025"},
	{Name: "Introduction to Microsoft Azure Cloud Services", Issuer: "Microsoft", Date: "Dec 2025"},
}
