package chat

import (
	"strings"
	"testing"

	"solvo/session"

	"go.uber.org/zap"
)

func newState() *session.State {
	return &session.State{}
}

func TestGreetingSelection(t *testing.T) {
	if got := Greeting("sw", "adventurous"); !strings.HasPrefix(got, "Karibu!") {
		t.Errorf("sw/adventurous greeting = %q", got)
	}
	if got := Greeting("fr", "formal"); !strings.HasPrefix(got, "Bienvenue.") {
		t.Errorf("fr/formal greeting = %q", got)
	}
	// Unknown combinations fall back to friendly English.
	if got, want := Greeting("de", "grumpy"), Greeting("en", "friendly"); got != want {
		t.Errorf("fallback greeting = %q, want %q", got, want)
	}
}

func TestEmailGateRejectsInvalidInput(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	state := newState()
	s.Open(state, "en", "friendly")
	logLen := len(state.ChatMessages)

	_, err := s.Handle(state, "not-an-email")
	if err != ErrInvalidEmail {
		t.Fatalf("error = %v, want ErrInvalidEmail", err)
	}
	if len(state.ChatMessages) != logLen {
		t.Errorf("rejected input appended %d message(s) to the log", len(state.ChatMessages)-logLen)
	}
	if state.ChatFlow.Stage != session.ChatStageEmail {
		t.Errorf("stage = %q, want email", state.ChatFlow.Stage)
	}
}

func TestEmailGateAdvancesToFirstQuestion(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	state := newState()
	s.Open(state, "en", "friendly")

	replies, err := s.Handle(state, "user@example.com")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if state.ChatFlow.Stage != session.ChatStageScripted {
		t.Errorf("stage = %q, want scripted", state.ChatFlow.Stage)
	}
	if state.ChatFlow.Email != "user@example.com" {
		t.Errorf("stored email = %q", state.ChatFlow.Email)
	}
	if len(replies) != 2 || replies[0].Text != "Thanks! Let's get started." {
		t.Fatalf("replies = %+v", replies)
	}
	if replies[1].Text != "When are you planning to travel?" {
		t.Errorf("first question = %q", replies[1].Text)
	}
}

func TestScriptRunsInOrderThenCloses(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	state := newState()
	s.Open(state, "en", "friendly")
	if _, err := s.Handle(state, "user@example.com"); err != nil {
		t.Fatal(err)
	}

	wantQuestions := []string{
		"What type of safari are you interested in?",
		"How many people will be traveling?",
		"Do you have any specific destinations in mind?",
		"What is your budget range for the safari?",
	}
	for i, want := range wantQuestions {
		replies, err := s.Handle(state, "answer")
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if len(replies) != 1 || replies[0].Text != want {
			t.Fatalf("answer %d: replies = %+v, want %q", i, replies, want)
		}
	}

	replies, err := s.Handle(state, "final answer")
	if err != nil {
		t.Fatal(err)
	}
	if len(replies) != 1 || replies[0].Text != "Thank you for your responses!" {
		t.Errorf("closing replies = %+v", replies)
	}
	if state.ChatFlow.Stage != session.ChatStageFreeform {
		t.Errorf("stage = %q, want freeform", state.ChatFlow.Stage)
	}
}

func TestRespondKeywordTable(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"What are your HOURS?", "We're open from 9 AM to 5 PM."},
		{"hours", "We're open from 9 AM to 5 PM."},
		{"where is your location", "Our office is located at 123 Safari Road, Nairobi, Kenya."},
		{"tell me about safari packages", "We offer various safari packages, including the Great Migration Safari, Amboseli Elephants and Mountain, and Sandy White Beach Experience."},
		{"payment options?", "We accept various payment options, including credit cards, PayPal, and bank transfers."},
		{"what is your cancellation policy", "You can cancel your booking up to 48 hours in advance for a full refund. Please check our website for more details."},
		{"do you sell ice cream", "I'm sorry, I don't understand that. Can you please rephrase your question?"},
	}
	for _, c := range cases {
		if got := Respond(c.input); got != c.want {
			t.Errorf("Respond(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestFreeformUsesReplyTable(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	state := newState()
	state.ChatFlow = session.ChatFlow{Stage: session.ChatStageFreeform}

	replies, err := s.Handle(state, "hours")
	if err != nil {
		t.Fatal(err)
	}
	if replies[0].Text != "We're open from 9 AM to 5 PM." {
		t.Errorf("reply = %q", replies[0].Text)
	}
	// Both turns land in the log.
	n := len(state.ChatMessages)
	if n < 2 || state.ChatMessages[n-2].Sender != "user" || state.ChatMessages[n-1].Sender != "bot" {
		t.Errorf("log tail = %+v", state.ChatMessages)
	}
}

func TestSearchFAQs(t *testing.T) {
	hits := SearchFAQs("cancellation")
	if len(hits) != 1 || !strings.Contains(hits[0].Question, "cancellation policy") {
		t.Errorf("hits = %+v", hits)
	}
	if got := len(SearchFAQs("")); got != len(faqs) {
		t.Errorf("empty query matched %d FAQs, want %d", got, len(faqs))
	}
	if hits := SearchFAQs("helicopter"); hits != nil {
		t.Errorf("unexpected hits: %+v", hits)
	}
}

func TestOpenSeedsGreetingOnce(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	state := newState()

	first := s.Open(state, "fr", "adventurous")
	if len(first) != 1 || first[0].Text != Greeting("fr", "adventurous") {
		t.Fatalf("initial log = %+v", first)
	}
	second := s.Open(state, "en", "formal")
	if len(second) != 1 {
		t.Errorf("reopen reseeded the log: %+v", second)
	}
}
