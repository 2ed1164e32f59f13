package quiz

// CTA is a call-to-action shown with a persona result.
type CTA struct {
	Text        string `json:"text"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Persona is the full result profile for one bucket.
type Persona struct {
	Type                string   `json:"type"`
	Title               string   `json:"title"`
	Tags                []string `json:"tags"`
	Description         string   `json:"description"`
	Strengths           []string `json:"strengths"`
	GrowthAreas         []string `json:"growth_areas"`
	NextSteps           []string `json:"next_steps"`
	PrimaryCTA          CTA      `json:"primary_cta"`
	SecondaryCTA        CTA      `json:"secondary_cta"`
	PersonalizedMessage string   `json:"personalized_message"`
}

var personas = map[string]Persona{
	BucketDreamer: {
		Type:  BucketDreamer,
		Title: "The Visionary Dreamer",
		Tags:  []string{"Dreamer", "Challenge-Ready", "Needs-Structure", "Vision-Focused"},
		Description: "You have incredible vision and big dreams, but you need more structure and consistent action " +
			"to bring those dreams to life. Your imagination is your superpower - now it's time to build the bridge " +
			"between vision and reality.",
		Strengths: []string{
			"Powerful imagination and visionary thinking",
			"Natural ability to see possibilities others miss",
			"Strong intuition about what could be possible",
			"Inspiring and motivating to others",
		},
		GrowthAreas: []string{
			"Converting ideas into consistent daily actions",
			"Building sustainable systems and structures",
			"Maintaining momentum through challenges",
			"Breaking big visions into manageable steps",
		},
		NextSteps: []string{
			"Start with ONE specific goal and create a daily action plan",
			"Find an accountability partner or coach",
			"Learn proven frameworks for turning vision into reality",
			"Focus on building consistent habits before taking on too much",
		},
		PrimaryCTA: CTA{
			Text:        "Join the 30-Day Pure Life Challenge",
			URL:         "https://purelifewarrior.com/challenge",
			Description: "Perfect for Dreamers who need structure and daily accountability to turn their vision into reality.",
		},
		SecondaryCTA: CTA{
			Text:        "Explore Our Vision-to-Reality Framework",
			URL:         "https://purelifewarrior.com/framework",
			Description: "Get the exact system for converting big dreams into achievable daily actions.",
		},
		PersonalizedMessage: "Your vision is your gift to the world - but the world needs you to take action on it. " +
			"The gap between where you are and where you want to be can be bridged with the right structure and support.",
	},
	BucketBuilder: {
		Type:  BucketBuilder,
		Title: "The Determined Builder",
		Tags:  []string{"Builder", "Challenge-Ready", "Elite-Prospect", "Growth-Minded"},
		Description: "You have a solid foundation and are making consistent progress, but you're ready to accelerate " +
			"your growth and build something truly significant. You understand the value of both vision and action.",
		Strengths: []string{
			"Good balance of vision and practical action",
			"Consistent effort toward your goals",
			"Ability to learn and adapt",
			"Building positive momentum in key areas",
		},
		GrowthAreas: []string{
			"Accelerating your rate of progress",
			"Developing more sophisticated strategies",
			"Building stronger support systems",
			"Optimizing your approach for better results",
		},
		NextSteps: []string{
			"Identify your highest-leverage activities",
			"Invest in advanced training and mentorship",
			"Connect with other high-achievers",
			"Systematize what's working to scale your impact",
		},
		PrimaryCTA: CTA{
			Text:        "Join the Pure Life Challenge + Elite Preview",
			URL:         "https://purelifewarrior.com/challenge-elite",
			Description: "Perfect for Builders ready to accelerate their progress with advanced strategies and elite-level community.",
		},
		SecondaryCTA: CTA{
			Text:        "Discover Elite Membership Benefits",
			URL:         "https://purelifewarrior.com/elite-preview",
			Description: "See how our Elite community can help you build faster and more effectively.",
		},
		PersonalizedMessage: "You're already building - now it's time to build smarter and faster. The right community " +
			"and advanced strategies will help you achieve in months what might otherwise take years.",
	},
	BucketDriver: {
		Type:  BucketDriver,
		Title: "The High-Performance Driver",
		Tags:  []string{"Driver", "Challenge-Ready", "Elite-Ready", "High-Achiever"},
		Description: "You're operating at a high level and consistently achieving your goals. You're ready for " +
			"elite-level challenges and community. Your focus should be on optimization, leverage, and creating even " +
			"greater impact.",
		Strengths: []string{
			"Strong execution and consistent results",
			"Good systems and processes",
			"Resilience through challenges",
			"Clear vision with aligned action",
		},
		GrowthAreas: []string{
			"Optimizing for maximum leverage and impact",
			"Building and leading others",
			"Scaling your systems and influence",
			"Maintaining peak performance sustainably",
		},
		NextSteps: []string{
			"Focus on high-leverage activities only",
			"Build or join an elite peer community",
			"Develop leadership and mentoring skills",
			"Create systems that work without your constant input",
		},
		PrimaryCTA: CTA{
			Text:        "Apply for Elite Membership",
			URL:         "https://purelifewarrior.com/elite-application",
			Description: "Exclusive community for high-performers ready to optimize their impact and scale their influence.",
		},
		SecondaryCTA: CTA{
			Text:        "Explore Advanced Performance Training",
			URL:         "https://purelifewarrior.com/advanced-training",
			Description: "Take your already-strong performance to the next level with advanced strategies.",
		},
		PersonalizedMessage: "You're already achieving at a high level - now it's time to focus on leverage and impact. " +
			"The right elite community will help you scale your influence and create lasting change.",
	},
	BucketLeader: {
		Type:  BucketLeader,
		Title: "The Transformational Leader",
		Tags:  []string{"Leader", "Challenge-Ready", "Elite-Ready", "Retreat-Prospect", "Transformational"},
		Description: "You're operating at an elite level with strong vision, consistent action, resilience, and " +
			"community. You're ready to lead others and create transformational impact. Your focus should be on legacy " +
			"and leading by example.",
		Strengths: []string{
			"Exceptional integration across all life areas",
			"Strong leadership capabilities",
			"Consistent high performance",
			"Clear vision with masterful execution",
		},
		GrowthAreas: []string{
			"Expanding your sphere of influence",
			"Creating transformational experiences for others",
			"Building lasting legacy systems",
			"Mastering the art of sustainable peak performance",
		},
		NextSteps: []string{
			"Focus on creating transformation in others",
			"Build platforms for sharing your wisdom",
			"Invest in exclusive high-level experiences",
			"Create systems that perpetuate your impact",
		},
		PrimaryCTA: CTA{
			Text:        "Explore Tulum Leadership Retreat",
			URL:         "https://purelifewarrior.com/tulum-retreat",
			Description: "Exclusive retreat for transformational leaders ready to create their ultimate legacy.",
		},
		SecondaryCTA: CTA{
			Text:        "Join Elite + Retreat Track",
			URL:         "https://purelifewarrior.com/elite-retreat",
			Description: "The highest level of community and transformation for proven leaders.",
		},
		PersonalizedMessage: "You've achieved what most people only dream of. Now your opportunity is to create " +
			"transformation for others while continuing to grow your own impact and legacy. The world needs your leadership.",
	},
}

// PersonaFor returns the persona profile for a total score.
func PersonaFor(total int) Persona {
	return personas[BucketFor(total)]
}

// PersonaByType returns the persona profile for a bucket name.
func PersonaByType(bucket string) (Persona, bool) {
	p, ok := personas[bucket]
	return p, ok
}
