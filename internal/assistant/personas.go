package assistant

// Fallback groups select the canned replies used without the network.
const (
	groupQuote    = "quote"
	groupSchedule = "schedule"
	groupSupport  = "support"
)

type Persona struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"-"`
	group        string
}

var personas = []Persona{
	{
		ID:           "quote-assistant",
		Name:         "Quote Assistant",
		Description:  "Drafts line items, pricing and client messages for quotes.",
		SystemPrompt: "You help a handyman business prepare clear, fair quotes. Break work into line items with quantities and unit prices, flag missing details, and keep client-facing wording friendly and concise.",
		group:        groupQuote,
	},
	{
		ID:           "schedule-optimizer",
		Name:         "Schedule Optimizer",
		Description:  "Plans job order, travel and working days.",
		SystemPrompt: "You plan the week for a small handyman crew. Work Monday through Saturday, group jobs by location, respect customer time preferences, and call out scheduling conflicts.",
		group:        groupSchedule,
	},
	{
		ID:           "customer-support",
		Name:         "Customer Support",
		Description:  "Answers customer questions and follow-ups.",
		SystemPrompt: "You answer customer messages on behalf of a handyman business. Be polite, brief and specific, and never promise dates or prices that were not given to you.",
		group:        groupSupport,
	},
	{
		ID:           "marketing-assistant",
		Name:         "Marketing Assistant",
		Description:  "Writes promotions, reviews requests and social posts.",
		SystemPrompt: "You write short marketing copy for a local handyman business: seasonal promotions, review requests and social media posts. Keep a warm, trustworthy tone.",
		group:        groupSupport,
	},
	{
		ID:           "bidgpt",
		Name:         "BidGPT",
		Description:  "Estimates bids from a job description.",
		SystemPrompt: "You estimate bids for residential repair work. Given a job description, list materials, labor hours and a price range, and state your assumptions.",
		group:        groupQuote,
	},
	{
		ID:           "quick-reply",
		Name:         "Quick Reply",
		Description:  "One-line replies to texts and emails.",
		SystemPrompt: "You write one or two sentence replies to customer texts and emails for a handyman business.",
		group:        groupSupport,
	},
}

var fallbacks = map[string][]string{
	groupQuote: {
		"Start with the main task as one line item, then add materials and disposal separately so the customer can see where the cost comes from.",
		"Consider adding a small contingency line for unexpected repairs and note any assumptions in the disclaimer.",
		"For jobs over a day, a deposit of 25 to 50 percent of the total is common. Make sure it never exceeds the quote total.",
	},
	groupSchedule: {
		"Group jobs in the same neighborhood on the same day and keep Sundays free.",
		"Schedule assessments early in the week so quotes can go out before the weekend.",
		"Leave a buffer after large jobs in case they run over.",
	},
	groupSupport: {
		"Thanks for reaching out! We have your message and will get back to you shortly.",
		"Thanks for your patience. We will confirm the details and follow up with a time that works for you.",
		"We appreciate your business. Let us know if there is anything else we can help with.",
	},
}

// Personas lists the available assistants.
func Personas() []Persona {
	return append([]Persona(nil), personas...)
}

func findPersona(id string) (Persona, bool) {
	for _, p := range personas {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}

// cannedReply rotates through the persona's fallback replies by conversation length.
func cannedReply(p Persona, turn int) string {
	replies := fallbacks[p.group]
	if turn < 0 {
		turn = 0
	}
	return replies[turn%len(replies)]
}
