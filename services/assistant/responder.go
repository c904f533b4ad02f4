package assistant

import (
	"regexp"
	"strings"

	"transformai/models"
)

// DefaultPromptTemplate renders the user's question into the house prompt.
// The whole template can be swapped via the ASSISTANT_PROMPT setting.
const DefaultPromptTemplate = `
You are a friendly AI assistant for Transform AI Solutions. Keep your answers brief, conversational, and end with a question.

Our mission: We make AI affordable and accessible for small and medium businesses, helping them unlock the power of AI without high costs, just the benefits. We help businesses transform by improving marketing strategies, client acquisition, relationship management, and workflow efficiency.

When responding:
1. Keep responses under 30 words whenever possible
2. Use casual, friendly tone - no formal business language
3. End EVERY response with a specific question to continue the conversation
4. Be enthusiastic about how AI can transform businesses and "give them a hand"
5. Emphasize affordability and practical benefits for smaller businesses
6. Focus on how AI reduces workload so businesses can focus on what they do best
7. Never provide lengthy explanations
8. Always present AI as a transformative but accessible technology

Company info: Transform AI Solutions helps businesses evolve through affordable AI implementation, like transforming a caterpillar into a butterfly.

QUESTION: {{QUESTION}}
`

// ErrorReply is returned whenever the language model fails.
const ErrorReply = "I'm sorry, I encountered an error while processing your request. Please try again later."

const servicesOverviewReply = "We offer AI chatbots, process automation, and data analytics solutions for businesses. Which specific service would you like to learn more about?"

var serviceInquiryKeywords = []string{
	"service",
	"what do you offer",
	"what can you do",
	"tell me about",
	"want to ask",
	"want to know",
}

type predefinedResponse struct {
	keyword string
	reply   string
}

// Checked in order; first keyword contained in the message wins.
var predefinedResponses = []predefinedResponse{
	{"chatbot solutions", "We offer custom chatbots for customer service, sales, and internal processes. What specific need are you looking to address? Happy to share examples."},
	{"ai agents", "Our AI agents can automate tasks, analyze data, and integrate with your systems. What processes are you looking to improve?"},
	{"implementation process", "Our implementation takes 2-4 weeks: planning, development, testing, and deployment. Would you like to see our approach in action?"},
	{"pricing", "Pricing starts at $99/month based on features and volume. Would you like me to connect you with our sales team for a custom quote?"},
	{"demo", "We'd be happy to show you a demo! Would you like to book a time with our team? I can help schedule that right now."},
	{"services", "We specialize in AI chatbots, automation systems, and data analytics solutions. Which specific service would you like to know more about?"},
	{"your services", "Our services include custom AI chatbots, process automation, and intelligent analytics. What particular area interests you most?"},
}

// cannedReply answers common service inquiries without touching the model.
// The specific-service keys are checked after the generic inquiry keywords,
// so "your services" style questions get the overview first.
func cannedReply(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, kw := range serviceInquiryKeywords {
		if strings.Contains(lower, kw) {
			return servicesOverviewReply, true
		}
	}
	for _, pr := range predefinedResponses {
		if strings.Contains(lower, pr.keyword) {
			return pr.reply, true
		}
	}
	return "", false
}

// formatHistory renders prior messages as role-prefixed lines for the prompt.
func formatHistory(messages []models.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		role := "ASSISTANT"
		if msg.IsUser {
			role = "USER"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

var rolePrefixPattern = regexp.MustCompile(`(?i)^(Response:|Answer:|Bot:|Assistant:|AI:)`)

// cleanGeneratedReply strips role prefixes the model sometimes echoes back.
func cleanGeneratedReply(text string) string {
	text = strings.TrimSpace(text)
	text = rolePrefixPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
