package assistantService

import (
	"ShuleGolang/internal/api/assistant"
	assistantRepository "ShuleGolang/internal/api/assistant/repository"
	"ShuleGolang/internal/api/school"
	"ShuleGolang/internal/entity"
	"ShuleGolang/pkg/ollama"
	redisPkg "ShuleGolang/pkg/redis"
	"ShuleGolang/pkg/rewrite"
	"ShuleGolang/pkg/utils"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedBridge struct {
	mu        sync.Mutex
	calls     int
	responses []string
	err       error
}

func (b *scriptedBridge) Generate(ctx context.Context, prompt string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls++
	if b.err != nil {
		return "", b.err
	}
	if len(b.responses) == 0 {
		return "{}", nil
	}
	next := b.responses[0]
	if len(b.responses) > 1 {
		b.responses = b.responses[1:]
	}
	return next, nil
}

func (b *scriptedBridge) Health(ctx context.Context) error {
	return b.err
}

func (b *scriptedBridge) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

type fakeTurnStore struct {
	mu     sync.Mutex
	turns  []entity.ConversationTurn
	getErr error
}

func (f *fakeTurnStore) CreateTurn(ctx context.Context, turn entity.ConversationTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeTurnStore) GetTurnsByConversationID(ctx context.Context, conversationID string, limit, offset int) ([]entity.ConversationTurn, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, 0, f.getErr
	}

	var matched []entity.ConversationTurn
	for _, turn := range f.turns {
		if turn.ConversationID == conversationID {
			matched = append(matched, turn)
		}
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeTurnStore) DeleteTurnsByConversationID(ctx context.Context, conversationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.turns[:0]
	for _, turn := range f.turns {
		if turn.ConversationID != conversationID {
			kept = append(kept, turn)
		}
	}
	f.turns = kept
	return nil
}

type fakeRepository struct {
	store *fakeTurnStore
}

func (f *fakeRepository) NewClient(tx bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		Turns:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeSchoolService struct {
	mu        sync.Mutex
	students  []entity.Student
	guardians []entity.Guardian
	classes   []entity.SchoolClass
}

func (f *fakeSchoolService) CreateStudent(ctx context.Context, req school.CreateStudentRequest) (entity.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	admissionNo := req.AdmissionNo
	if admissionNo == "AUTO" {
		admissionNo = fmt.Sprintf("ADM-%04d", len(f.students)+1)
	}
	student := entity.Student{
		ID:          fmt.Sprintf("student-%d", len(f.students)+1),
		StudentName: req.StudentName,
		AdmissionNo: admissionNo,
		ClassName:   req.ClassName,
		CreatedAt:   time.Now(),
	}
	f.students = append(f.students, student)
	return student, nil
}

func (f *fakeSchoolService) GetAllStudents(ctx context.Context, limit, offset int) ([]entity.Student, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Student{}, f.students...), len(f.students), nil
}

func (f *fakeSchoolService) CreateGuardian(ctx context.Context, req school.CreateGuardianRequest) (entity.Guardian, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	guardian := entity.Guardian{
		ID:           fmt.Sprintf("guardian-%d", len(f.guardians)+1),
		GuardianName: req.GuardianName,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Email:        req.Email,
		StudentName:  req.StudentName,
		CreatedAt:    time.Now(),
	}
	f.guardians = append(f.guardians, guardian)
	return guardian, nil
}

func (f *fakeSchoolService) GetAllGuardians(ctx context.Context, limit, offset int) ([]entity.Guardian, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Guardian{}, f.guardians...), len(f.guardians), nil
}

func (f *fakeSchoolService) CreateClass(ctx context.Context, req school.CreateClassRequest) (entity.SchoolClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	class := entity.SchoolClass{
		ID:        fmt.Sprintf("class-%d", len(f.classes)+1),
		ClassName: req.ClassName,
		Level:     req.Level,
		Stream:    req.Stream,
		CreatedAt: time.Now(),
	}
	f.classes = append(f.classes, class)
	return class, nil
}

func (f *fakeSchoolService) GetAllClasses(ctx context.Context) ([]entity.SchoolClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.SchoolClass{}, f.classes...), nil
}

type testHarness struct {
	service *assistantService
	brain   *scriptedBridge
	prep    *scriptedBridge
	repo    *fakeTurnStore
	school  *fakeSchoolService
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	cache := redisPkg.NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), logger)

	brain := &scriptedBridge{}
	prep := &scriptedBridge{}
	store := &fakeTurnStore{}
	schoolSvc := &fakeSchoolService{}

	service := NewAssistantService(
		logger,
		&fakeRepository{store: store},
		cache,
		rewrite.New(logger),
		brain,
		ollama.Config{Enabled: true, Model: "test-model", Timeout: time.Second, MemoryTurns: 10},
		prep,
		ollama.Config{Enabled: true, Model: "test-model", Timeout: time.Second, MemoryTurns: 5},
		schoolSvc,
		utils.New(),
	).(*assistantService)

	return &testHarness{
		service: service,
		brain:   brain,
		prep:    prep,
		repo:    store,
		school:  schoolSvc,
	}
}

func TestDecideQuickGreetingSkipsModel(t *testing.T) {
	h := newTestHarness(t)

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "Hello",
	})

	require.NoError(t, err)
	assert.Zero(t, h.brain.callCount())
	assert.Empty(t, res.Action)
	assert.False(t, res.Dispatched)
	assert.Contains(t, res.Response, "Hello")
}

func TestDecideListStudentsViaRewriteAndQuickPattern(t *testing.T) {
	h := newTestHarness(t)
	_, err := h.school.CreateStudent(context.Background(), school.CreateStudentRequest{
		StudentName: "Joshua Mwangi",
		AdmissionNo: "ADM-0001",
		ClassName:   "class 5",
	})
	require.NoError(t, err)

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "Can you show me all the students in the school?",
	})

	require.NoError(t, err)
	assert.Zero(t, h.brain.callCount())
	assert.Equal(t, "list_students", res.Action)
	assert.True(t, res.Dispatched)
	assert.Contains(t, res.Response, "Joshua Mwangi")
}

func TestDecideTimeoutDegradesToFallback(t *testing.T) {
	h := newTestHarness(t)
	h.brain.err = ollama.ErrTimeout

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "Tell me something about the weather today",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, h.brain.callCount())
	assert.Equal(t, fallbackResponse, res.Response)
	assert.Empty(t, res.Action)
	assert.False(t, res.Dispatched)

	turns, total, err := h.repo.GetTurnsByConversationID(context.Background(), "conv-1", 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, 0.0, turns[0].Confidence)
}

func TestDecideSuppressesPrematureAction(t *testing.T) {
	h := newTestHarness(t)
	h.brain.responses = []string{
		`{"response": "Creating the student now.", "action": "create_student", "slots": {"student_name": "Joshua Mwangi"}}`,
	}

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "His name is Joshua Mwangi",
	})

	require.NoError(t, err)
	assert.Empty(t, res.Action)
	assert.False(t, res.Dispatched)
	assert.Empty(t, h.school.students)
	assert.Equal(t, "Joshua Mwangi", res.Slots["student_name"])
}

func TestDecideStripsLegacyActionPrefix(t *testing.T) {
	h := newTestHarness(t)
	h.brain.responses = []string{
		`{"response": "Got it!", "action": "action_create_student", "slots": {"student_name": "Joshua Mwangi", "admission_no": "AUTO", "class_name": "Grade 5"}}`,
	}

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "Grade 5",
	})

	require.NoError(t, err)
	assert.Equal(t, "create_student", res.Action)
	assert.True(t, res.Dispatched)
	require.Len(t, h.school.students, 1)
	assert.Equal(t, "Joshua Mwangi", h.school.students[0].StudentName)
}

func TestDecideStudentCreationScenario(t *testing.T) {
	h := newTestHarness(t)
	h.brain.responses = []string{
		`{"response": "Sure, let's create a student. What is the student's full name?", "action": null, "slots": {}}`,
		`{"response": "What is the admission number?", "action": null, "slots": {"student_name": "Joshua Mwangi"}}`,
		`{"response": "Which class should Joshua join?", "action": null, "slots": {"admission_no": "AUTO"}}`,
		`{"response": "Got it! Creating student Joshua Mwangi in Grade 5.", "action": "create_student", "slots": {"student_name": "Joshua Mwangi", "admission_no": "AUTO", "class_name": "Grade 5"}}`,
	}

	messages := []string{
		"I would like to make a new student record please",
		"Joshua Mwangi",
		"auto generate it",
		"Grade 5",
	}

	ctxSlots := map[string]string{}
	var last assistant.MessageResponse
	for _, message := range messages {
		res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
			ConversationID: "conv-1",
			Message:        message,
			Context: assistant.DecisionContext{
				ActiveWorkflow: "student_creation",
				Slots:          ctxSlots,
			},
		})
		require.NoError(t, err)
		ctxSlots = mergeSlots(ctxSlots, res.Slots)
		last = res
	}

	assert.Equal(t, "create_student", last.Action)
	assert.True(t, last.Dispatched)
	require.Len(t, h.school.students, 1)
	assert.Equal(t, "Joshua Mwangi", h.school.students[0].StudentName)
	assert.Equal(t, "Grade 5", h.school.students[0].ClassName)
	assert.NotEqual(t, "AUTO", h.school.students[0].AdmissionNo)

	memory := h.service.sessions.Get("conv-1")
	assert.Equal(t, 4, memory.Len())
}

func TestDecideGeneratesConversationID(t *testing.T) {
	h := newTestHarness(t)

	res, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		Message: "hi",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ConversationID)
}

func TestPreprocessQuickPatternSkipsModel(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.service.Preprocess(context.Background(), assistant.PreprocessRequest{
		ConversationID: "conv-1",
		Message:        "Good morning",
	})

	require.NoError(t, err)
	assert.Zero(t, h.prep.callCount())
	assert.Equal(t, "greet", result.SuggestedIntent)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestPreprocessCacheShortCircuitsSecondCall(t *testing.T) {
	h := newTestHarness(t)
	h.prep.responses = []string{
		`{"normalized_text": "greet", "suggested_intent": "greet", "entities": [], "confidence": 0.9, "context_update": {}}`,
	}

	first, err := h.service.Preprocess(context.Background(), assistant.PreprocessRequest{
		ConversationID: "conv-1",
		Message:        "greet",
	})
	require.NoError(t, err)

	second, err := h.service.Preprocess(context.Background(), assistant.PreprocessRequest{
		ConversationID: "conv-1",
		Message:        "greet",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, h.prep.callCount())
	assert.Equal(t, first, second)
}

func TestPreprocessDegradesToRewrittenText(t *testing.T) {
	h := newTestHarness(t)
	h.prep.err = ollama.ErrServiceUnavailable

	result, err := h.service.Preprocess(context.Background(), assistant.PreprocessRequest{
		ConversationID: "conv-1",
		Message:        "Enroll Joshua in grade 4",
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, "create joshua in class 4", result.NormalizedText)
	assert.NotNil(t, result.Entities)
	assert.NotNil(t, result.ContextUpdate)
}

func TestResetClearsMemoryAndTranscript(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.service.Decide(context.Background(), assistant.MessageRequest{
		ConversationID: "conv-1",
		Message:        "hello",
	})
	require.NoError(t, err)

	require.NoError(t, h.service.Reset(context.Background(), "conv-1"))

	_, _, err = h.service.GetHistory(context.Background(), "conv-1", 10, 0)
	assert.ErrorIs(t, err, assistant.ErrConversationNotFound)
	assert.Equal(t, 0, h.service.sessions.Get("conv-1").Len())
}

func TestConversationMemoryEvictsOldest(t *testing.T) {
	memory := newConversationMemory(5)

	for i := 0; i < 12; i++ {
		memory.Append(memoryTurn{UserText: fmt.Sprintf("message %d", i)})
	}

	assert.Equal(t, 5, memory.Len())

	recent := memory.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "message 9", recent[0].UserText)
	assert.Equal(t, "message 11", recent[2].UserText)
}

func TestDecideConcurrentSameConversation(t *testing.T) {
	h := newTestHarness(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.service.Decide(context.Background(), assistant.MessageRequest{
				ConversationID: "conv-shared",
				Message:        "hello",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 8, h.service.sessions.Get("conv-shared").Len())
}

func TestGetHistoryRepositoryFailure(t *testing.T) {
	h := newTestHarness(t)
	h.repo.getErr = fmt.Errorf("connection refused")

	_, _, err := h.service.GetHistory(context.Background(), "conv-1", 10, 0)

	assert.ErrorIs(t, err, assistant.ErrHistoryUnavailable)
}

func TestDispatchIgnoresUnknownAction(t *testing.T) {
	h := newTestHarness(t)

	summary, err := h.service.dispatch(context.Background(), "archive_term", map[string]string{})

	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.Empty(t, h.school.students)
}

func TestHealthReportsDegradedBridge(t *testing.T) {
	h := newTestHarness(t)
	h.brain.err = ollama.ErrServiceUnavailable

	status := h.service.Health(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unreachable", status.Ollama)
	assert.Equal(t, "test-model", status.Model)
}
