// ABOUTME: Data models for the operations log
// ABOUTME: Defines DailyRecord sections, Contact, RelationshipAssessment, and UserState
package models

// Category tags a populated section of a DailyRecord.
type Category string

const (
	CategorySales         Category = "sales"
	CategoryNetwork       Category = "network"
	CategoryRelationships Category = "relationships"
	CategoryFinance       Category = "finance"
	CategoryProductivity  Category = "productivity"
	CategoryGym           Category = "gym"
	CategoryNotes         Category = "notes"
)

// AllCategories lists every category in canonical order.
var AllCategories = []Category{
	CategorySales,
	CategoryNetwork,
	CategoryRelationships,
	CategoryFinance,
	CategoryProductivity,
	CategoryGym,
	CategoryNotes,
}

// Deal stage constants.
const (
	StageProspecting   = "Prospecting"
	StageQualification = "Qualification"
	StageProposal      = "Proposal"
	StageNegotiation   = "Negotiation"
	StageClosedWon     = "Closed Won"
	StageClosedLost    = "Closed Lost"
)

// CallType constants.
const (
	CallCold     = "cold"
	CallWarm     = "warm"
	CallFollowup = "followup"
	CallClient   = "client"
)

// Call outcome constants.
const (
	OutcomeVoicemail     = "voicemail"
	OutcomeNotInterested = "not-interested"
	OutcomeCallback      = "callback"
	OutcomeQualified     = "qualified"
	OutcomeMeeting       = "meeting"
)

// NetworkTier classifies a contact. It is never derived.
type NetworkTier string

const (
	TierStrategic NetworkTier = "strategic"
	TierKey       NetworkTier = "key"
	TierRegular   NetworkTier = "regular"
	TierCasual    NetworkTier = "casual"
)

// Industry sector constants.
const (
	IndustryMining        = "Mining"
	IndustryTourism       = "Tourism"
	IndustryFinance       = "Finance"
	IndustryAgriculture   = "Agriculture"
	IndustryTech          = "Tech"
	IndustryGovernment    = "Government"
	IndustryManufacturing = "Manufacturing"
	IndustryOther         = "Other"
)

// Mood constants.
const (
	MoodPositive = "Positive"
	MoodNeutral  = "Neutral"
	MoodNegative = "Negative"
	MoodTense    = "Tense"
	MoodRelaxed  = "Relaxed"
)

// Weather constants.
const (
	WeatherSunny  = "Sunny"
	WeatherCloudy = "Cloudy"
	WeatherRainy  = "Rainy"
	WeatherStormy = "Stormy"
	WeatherClear  = "Clear"
)

// Value tier constants.
const (
	ValueLow       = "Low"
	ValueMedium    = "Medium"
	ValueHigh      = "High"
	ValueStrategic = "Strategic"
)

// Plan constants.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Theme constants.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type SalesSource struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

type RevenueSource struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type CallRecord struct {
	ID              string   `json:"id"`
	Timestamp       string   `json:"timestamp"`
	Contact         string   `json:"contact"`
	Company         string   `json:"company"`
	Type            string   `json:"type"`
	Duration        string   `json:"duration"` // MM:SS
	DurationSeconds int      `json:"durationSeconds"`
	Outcome         string   `json:"outcome"`
	Objections      []string `json:"objections"`
	Notes           string   `json:"notes"`
	Success         bool     `json:"success"`
}

type SalesEntry struct {
	Leads            int             `json:"leads"`
	Sources          []SalesSource   `json:"sources"`
	LeadQuality      int             `json:"leadQuality"` // 1-10
	ColdCalls        int             `json:"coldCalls"`
	Meetings         int             `json:"meetings"`
	DealsClosed      int             `json:"dealsClosed"`
	Revenue          float64         `json:"revenue"`
	RevenueBreakdown []RevenueSource `json:"revenueBreakdown"`
	DealStage        string          `json:"dealStage"`
	CallLog          []CallRecord    `json:"callLog"`
	Notes            string          `json:"notes"`
}

type Contact struct {
	ID                  string      `json:"id"`
	FullName            string      `json:"fullName"`
	Title               string      `json:"title"`
	Position            string      `json:"position"`
	Company             string      `json:"company"`
	Industry            string      `json:"industry"`
	Tier                NetworkTier `json:"tier"`
	EstimatedNetWorth   float64     `json:"estimatedNetWorth"`
	WealthConfidence    float64     `json:"wealthConfidence"`
	PrimaryIncomeSource string      `json:"primaryIncomeSource"`
	LastTrustScore      int         `json:"lastTrustScore"`
	InteractionCount    int         `json:"interactionCount"`
	LastInteractionDate string      `json:"lastInteractionDate,omitempty"`
	Tags                []string    `json:"tags"`
	Notes               string      `json:"notes"`
}

type NetworkEntry struct {
	NewContacts           []Contact `json:"newContacts"`
	Reconnections         int       `json:"reconnections"`
	IntroductionsGiven    int       `json:"introductionsGiven"`
	IntroductionsReceived int       `json:"introductionsReceived"`
	Notes                 string    `json:"notes,omitempty"`
}

// TrustMatrix is the five-dimension relationship rubric.
type TrustMatrix struct {
	Integrity     int `json:"integrity"`     // 0-25
	Competence    int `json:"competence"`    // 0-25
	Communication int `json:"communication"` // 0-20
	Alignment     int `json:"alignment"`     // 0-15
	Reciprocity   int `json:"reciprocity"`   // 0-15
}

type ValueExchange struct {
	TimeInvested   int     `json:"timeInvested"`   // minutes
	ResourcesSpent float64 `json:"resourcesSpent"` // BWP
	ValueReceived  string  `json:"valueReceived"`
	Notes          string  `json:"notes"`
}

// RelationshipAssessment references its contact by id only; the contact may be missing.
type RelationshipAssessment struct {
	ContactID      string        `json:"contactId"`
	TrustMatrix    TrustMatrix   `json:"trustMatrix"`
	Temperature    int           `json:"temperature"` // 0-100
	Mood           string        `json:"mood"`
	Weather        string        `json:"weather"`
	ValueExchange  ValueExchange `json:"valueExchange"`
	ConflictLogged bool          `json:"conflictLogged"`
	StrategicNotes string        `json:"strategicNotes"`
}

type FinanceEntry struct {
	Revenue           float64 `json:"revenue"`
	OperatingExpenses float64 `json:"operatingExpenses"`
	MRR               float64 `json:"mrr"`
	Churn             float64 `json:"churn"`
	TaxReserve        float64 `json:"taxReserve"`
	CashPosition      float64 `json:"cashPosition"`
	Notes             string  `json:"notes,omitempty"`
}

type ProductivityEntry struct {
	FocusHours           float64  `json:"focusHours"`
	DeepWorkHours        float64  `json:"deepWorkHours"`
	TasksCompleted       int      `json:"tasksCompleted"`
	EnergyLevel          int      `json:"energyLevel"` // 1-10
	StressLevel          int      `json:"stressLevel"` // 1-10
	MajorAccomplishments []string `json:"majorAccomplishments"`
	Notes                string   `json:"notes,omitempty"`
}

type GymEntry struct {
	Type      string  `json:"type"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
	Notes     string  `json:"notes"`
}

// DailyRecord is everything captured for one calendar date.
// Categories is derived from the populated sections; see Merge.
type DailyRecord struct {
	Sales         *SalesEntry              `json:"sales,omitempty"`
	Network       *NetworkEntry            `json:"network,omitempty"`
	Relationships []RelationshipAssessment `json:"relationships,omitempty"`
	Finance       *FinanceEntry            `json:"finance,omitempty"`
	Productivity  *ProductivityEntry       `json:"productivity,omitempty"`
	Gym           *GymEntry                `json:"gym,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
	Categories    []Category               `json:"categories"`
}

type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserState is the root of everything persisted.
type UserState struct {
	Entries    map[string]DailyRecord `json:"entries"`
	Contacts   []Contact              `json:"contacts"`
	Consent    bool                   `json:"consent"`
	Theme      string                 `json:"theme"`
	Plan       string                 `json:"plan"`
	IsLoggedIn bool                   `json:"isLoggedIn"`
	Profile    *UserProfile           `json:"profile,omitempty"`
}

// NewUserState returns the state used when nothing has been persisted yet.
func NewUserState() *UserState {
	return &UserState{
		Entries:  make(map[string]DailyRecord),
		Contacts: []Contact{},
		Theme:    ThemeDark,
		Plan:     PlanFree,
	}
}
