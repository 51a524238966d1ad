package models

// CategoryColor is one of the fixed palette tags a category can carry.
type CategoryColor string

// The seven allowed category colors.
const (
	CategoryColorBlue   CategoryColor = "blue"
	CategoryColorGreen  CategoryColor = "green"
	CategoryColorOrange CategoryColor = "orange"
	CategoryColorPink   CategoryColor = "pink"
	CategoryColorPurple CategoryColor = "purple"
	CategoryColorRed    CategoryColor = "red"
	CategoryColorYellow CategoryColor = "yellow"
)

// CategoryColors lists every allowed color tag.
var CategoryColors = []CategoryColor{
	CategoryColorBlue,
	CategoryColorGreen,
	CategoryColorOrange,
	CategoryColorPink,
	CategoryColorPurple,
	CategoryColorRed,
	CategoryColorYellow,
}

// CategoryIcons lists the allowed icon tags. The names match the icon set
// the client renders from.
var CategoryIcons = []string{
	"BriefcaseBusiness",
	"CarFront",
	"HeartPulse",
	"PiggyBank",
	"ShoppingCart",
	"Ticket",
	"ToolCase",
	"Utensils",
	"PawPrint",
	"House",
	"Gift",
	"Dumbbell",
	"BookOpen",
	"BaggageClaim",
	"Mailbox",
	"ReceiptText",
}

// Category represents a user-defined transaction category.
type Category struct {
	Base
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Icon        string        `gorm:"not null" json:"icon"`
	Color       CategoryColor `gorm:"not null" json:"color"`
	UserID      string        `gorm:"type:uuid;not null;index" json:"userId"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
