package chat

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"solvo/models"
	"solvo/session"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ErrInvalidEmail rejects the email gate. The rejected input is never
// appended to the chat log.
var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	startedReply = "Thanks! Let's get started."
	closingReply = "Thank you for your responses!"
	fallback     = "I'm sorry, I don't understand that. Can you please rephrase your question?"
)

var scriptedQuestions = []string{
	"When are you planning to travel?",
	"What type of safari are you interested in?",
	"How many people will be traveling?",
	"Do you have any specific destinations in mind?",
	"What is your budget range for the safari?",
}

// rule is one row of the free-form reply table: first keyword that appears
// as a substring of the lowercased input wins.
type rule struct {
	keyword string
	reply   string
}

var replyRules = []rule{
	{"hours", "We're open from 9 AM to 5 PM."},
	{"location", "Our office is located at 123 Safari Road, Nairobi, Kenya."},
	{"safari packages", "We offer various safari packages, including the Great Migration Safari, Amboseli Elephants and Mountain, and Sandy White Beach Experience."},
	{"best time to visit", "The best time to visit is during the dry season, from June to October, when wildlife is more active."},
	{"what to bring", "We recommend bringing comfortable clothing, sunscreen, a hat, and a good camera to capture the moments."},
	{"payment options", "We accept various payment options, including credit cards, PayPal, and bank transfers."},
	{"cancellation policy", "You can cancel your booking up to 48 hours in advance for a full refund. Please check our website for more details."},
}

var greetings = map[string]map[string]string{
	"en": {
		"friendly":    "Hi! 👋 Please enter your email to start chatting with us.",
		"adventurous": "Jambo! 🦁 Ready for an adventure? Enter your email to begin!",
		"formal":      "Welcome. Please provide your email to start our conversation.",
	},
	"sw": {
		"friendly":    "Habari! 👋 Tafadhali weka barua pepe kuanza mazungumzo.",
		"adventurous": "Karibu! 🦁 Tayari kwa safari? Weka barua pepe kuanza!",
		"formal":      "Karibu. Tafadhali toa barua pepe kuanza mazungumzo.",
	},
	"fr": {
		"friendly":    "Salut! 👋 Veuillez entrer votre e-mail pour commencer à discuter.",
		"adventurous": "Bonjour! 🦁 Prêt pour l'aventure? Entrez votre e-mail pour commencer!",
		"formal":      "Bienvenue. Veuillez fournir votre e-mail pour commencer la conversation.",
	},
}

var quickReplies = map[string][]QuickReply{
	"en": {
		{Label: "Safari Packages", Value: "Tell me about safari packages"},
		{Label: "Pricing", Value: "What are your prices?"},
		{Label: "Contact Agent", Value: "I want to talk to an agent"},
	},
	"sw": {
		{Label: "Paketiza Safari", Value: "Niambie kuhusu paketiza safari"},
		{Label: "Bei", Value: "Bei zenu ni zipi?"},
		{Label: "Wasiliana na Wakala", Value: "Nataka kuzungumza na wakala"},
	},
	"fr": {
		{Label: "Safaris", Value: "Parlez-moi des safaris"},
		{Label: "Tarifs", Value: "Quels sont vos prix?"},
		{Label: "Contacter un agent", Value: "Je veux parler à un agent"},
	},
}

// QuickReply is a one-tap canned prompt shown under the input box.
type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FAQ is one searchable question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var faqs = []FAQ{
	{
		Question: "What is the best time to go on a safari?",
		Answer:   "The best time to visit is during the dry season, from June to October, when wildlife is more active.",
	},
	{
		Question: "What should I pack for a safari?",
		Answer:   "We recommend bringing comfortable clothing, sunscreen, a hat, and a good camera to capture the moments.",
	},
	{
		Question: "Are the safaris family-friendly?",
		Answer:   "Yes, we offer family-friendly safari packages that cater to all ages.",
	},
	{
		Question: "What is your cancellation policy?",
		Answer:   "You can cancel your booking up to 48 hours in advance for a full refund. Please check our website for more details.",
	},
	{
		Question: "Do you provide meals during the safari?",
		Answer:   "Yes, meals are included in most of our safari packages. Please check the specific package details for more information.",
	},
}

// Enqueuer is the slice of asynq.Client the relay needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service runs the scripted chat state machine over a visitor's session.
// Transitions: collecting email, then the fixed question script, then
// keyword-matched free-form replies.
type Service struct {
	relay  Enqueuer
	logger *zap.Logger
	now    func() time.Time
}

// NewService builds the chat service. A nil relay disables the upstream
// message relay.
func NewService(relay Enqueuer, logger *zap.Logger) *Service {
	return &Service{relay: relay, logger: logger, now: time.Now}
}

// Greeting picks the opening line for a language and personality, falling
// back to the friendly English one.
func Greeting(language, personality string) string {
	if byPersonality, ok := greetings[language]; ok {
		if g, ok := byPersonality[personality]; ok {
			return g
		}
	}
	return greetings["en"]["friendly"]
}

// QuickReplies returns the canned prompts for a language.
func QuickReplies(language string) []QuickReply {
	if qr, ok := quickReplies[language]; ok {
		return qr
	}
	return quickReplies["en"]
}

// Respond resolves a free-form message against the reply table.
func Respond(message string) string {
	lower := strings.ToLower(message)
	for _, r := range replyRules {
		if strings.Contains(lower, r.keyword) {
			return r.reply
		}
	}
	return fallback
}

// SearchFAQs returns the FAQs whose question or answer contains the query,
// case-insensitively. An empty query matches everything.
func SearchFAQs(query string) []FAQ {
	query = strings.ToLower(query)
	var out []FAQ
	for _, f := range faqs {
		if strings.Contains(strings.ToLower(f.Question), query) ||
			strings.Contains(strings.ToLower(f.Answer), query) {
			out = append(out, f)
		}
	}
	return out
}

// Open seeds the conversation if it has not started yet and returns the full
// message log.
func (s *Service) Open(state *session.State, language, personality string) []models.ChatMessage {
	if state.ChatFlow.Stage == "" {
		state.ChatFlow = session.ChatFlow{
			Stage:       session.ChatStageEmail,
			Language:    language,
			Personality: personality,
		}
	}
	if len(state.ChatMessages) == 0 {
		s.appendBot(state, Greeting(state.ChatFlow.Language, state.ChatFlow.Personality))
	}
	return state.ChatMessages
}

// Handle advances the state machine with one user input and returns the bot
// replies it produced. The caller persists the session afterwards.
func (s *Service) Handle(state *session.State, input string) ([]models.ChatMessage, error) {
	switch state.ChatFlow.Stage {
	case "", session.ChatStageEmail:
		if !emailPattern.MatchString(strings.TrimSpace(input)) {
			return nil, ErrInvalidEmail
		}
		s.appendUser(state, input)
		state.ChatFlow.Email = strings.TrimSpace(input)
		state.ChatFlow.Stage = session.ChatStageScripted
		state.ChatFlow.QuestionIndex = 0
		return []models.ChatMessage{
			s.appendBot(state, startedReply),
			s.appendBot(state, scriptedQuestions[0]),
		}, nil

	case session.ChatStageScripted:
		s.appendUser(state, input)
		next := state.ChatFlow.QuestionIndex + 1
		if next < len(scriptedQuestions) {
			state.ChatFlow.QuestionIndex = next
			return []models.ChatMessage{s.appendBot(state, scriptedQuestions[next])}, nil
		}
		state.ChatFlow.Stage = session.ChatStageFreeform
		return []models.ChatMessage{s.appendBot(state, closingReply)}, nil

	case session.ChatStageFreeform:
		s.appendUser(state, input)
		return []models.ChatMessage{s.appendBot(state, Respond(input))}, nil

	default:
		return nil, errors.New("unknown chat stage " + state.ChatFlow.Stage)
	}
}

// AttachFile records an attachment turn. Attachments never advance the
// state machine.
func (s *Service) AttachFile(state *session.State, dataURL, fileType string) models.ChatMessage {
	msg := models.ChatMessage{
		Sender:    "user",
		File:      dataURL,
		FileType:  fileType,
		Timestamp: s.now(),
	}
	state.ChatMessages = append(state.ChatMessages, msg)
	s.enqueueRelay(msg)
	return msg
}

func (s *Service) appendUser(state *session.State, text string) models.ChatMessage {
	msg := models.ChatMessage{Sender: "user", Text: text, Timestamp: s.now()}
	state.ChatMessages = append(state.ChatMessages, msg)
	s.enqueueRelay(msg)
	return msg
}

func (s *Service) appendBot(state *session.State, text string) models.ChatMessage {
	msg := models.ChatMessage{Sender: "bot", Text: text, Timestamp: s.now()}
	state.ChatMessages = append(state.ChatMessages, msg)
	s.enqueueRelay(msg)
	return msg
}

// enqueueRelay hands the message to the relay queue. Failures are logged
// and never surfaced to the visitor.
func (s *Service) enqueueRelay(msg models.ChatMessage) {
	if s.relay == nil {
		return
	}
	task, err := NewRelayTask(msg)
	if err != nil {
		s.logger.Warn("failed to build chat relay task", zap.Error(err))
		return
	}
	if _, err := s.relay.Enqueue(task, asynq.MaxRetry(3), asynq.Queue(QueueChat)); err != nil {
		s.logger.Warn("failed to enqueue chat relay task", zap.Error(err))
	}
}
