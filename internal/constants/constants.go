package constants

// Blog placement values. A post's placement controls which listing
// section it appears in on the public site.
const (
	PlacementNone    = "none"
	PlacementTop     = "top"
	PlacementMonthly = "monthly"
	PlacementLatest  = "latest"
)

// Section size caps.
const (
	SectionTopLimit       = 10
	SectionMonthlyLimit   = 5
	SectionLatestLimit    = 3
	SectionMostLikedLimit = 6
)

// Intake record kinds.
const (
	IntakeKindTestimonial = "testimonial"
	IntakeKindFaq         = "faq"
	IntakeKindContact     = "contact"
	IntakeKindWaitlist    = "waitlist"
)

// Setting keys.
const (
	SettingKeyMonthlyOrder = "blog.monthly_order"
)

// Queue and task names.
const (
	QueueDefault    = "default"
	TaskIntakeEmail = "email:intake"
	TaskTestEmail   = "email:test"
)

// Upload scenes.
const (
	UploadSceneBlog    = "blog"
	UploadSceneContent = "content"
	UploadSceneCommon  = "common"
)
