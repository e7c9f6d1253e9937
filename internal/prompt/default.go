package prompt

// DefaultPersona is the coach name the model is asked to speak as.
const DefaultPersona = "ATHLETIQ AI"

// DefaultWordLimit caps the length of the generated plan.
const DefaultWordLimit = 400

// MaxTips bounds the bullet list that follows the table layout.
const MaxTips = 5

// Sections are the parts every plan must contain, in this order.
var Sections = []string{
	"Warm-up",
	"Main workout",
	"Injury precautions",
	"Skill/tactical advice",
	"Nutrition tips",
	"Cool-down routine",
}

// TableColumns are the columns requested by LayoutTable.
var TableColumns = []string{"Section", "Exercises", "Duration", "Notes"}

const safetyLine = "Keep advice safe, motivating, and youth-appropriate."
