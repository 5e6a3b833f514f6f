package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/landxfer/internal/adapters/sqlstore"
	"github.com/example/landxfer/internal/core/guards"
	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

var (
	clerk         = primary.Actor{ID: "clerk-01", Role: "CLERK"}
	owo           = primary.Actor{ID: "owo-01", Role: "OWO"}
	bca           = primary.Actor{ID: "bca-01", Role: "BCA"}
	housing       = primary.Actor{ID: "housing-01", Role: "HOUSING"}
	accountsStaff = primary.Actor{ID: "accounts-01", Role: "ACCOUNTS"}
	approver      = primary.Actor{ID: "approver-01", Role: "APPROVER"}
	admin         = primary.Actor{ID: "admin-01", Role: "ADMIN"}
)

// testEngine wires every service against one store, the way the CLI does.
type testEngine struct {
	store      secondary.Store
	raw        *sqlstore.Store
	db         *sql.DB
	logs       *observer.ObservedLogs
	workflow   *WorkflowServiceImpl
	cases      *CaseServiceImpl
	clearances *ClearanceServiceImpl
	reviews    *ReviewServiceImpl
	accounts   *AccountsServiceImpl
	deeds      *DeedServiceImpl
	audit      *AuditServiceImpl
}

type engineOptions struct {
	defs     map[workflow.GuardName]guards.Definition
	hooks    []primary.PostTransitionHook
	wrap     func(secondary.Store) secondary.Store
	exporter secondary.AuditExporter
}

type engineOption func(*engineOptions)

func withDefinitions(defs map[workflow.GuardName]guards.Definition) engineOption {
	return func(o *engineOptions) { o.defs = defs }
}

func withHooks(hooks ...primary.PostTransitionHook) engineOption {
	return func(o *engineOptions) { o.hooks = hooks }
}

func withStoreWrapper(wrap func(secondary.Store) secondary.Store) engineOption {
	return func(o *engineOptions) { o.wrap = wrap }
}

func withExporter(exp secondary.AuditExporter) engineOption {
	return func(o *engineOptions) { o.exporter = exp }
}

// newTestEngine builds an engine on a private in-memory database.
func newTestEngine(t *testing.T, opts ...engineOption) *testEngine {
	t.Helper()

	testDB, err := db.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })

	return buildEngine(t, testDB, opts...)
}

// newFileEngine builds an engine on a SQLite file with a real connection pool.
func newFileEngine(t *testing.T, opts ...engineOption) *testEngine {
	t.Helper()

	ctx := context.Background()
	testDB, err := db.Open(ctx, db.Options{
		Driver:       db.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "xfer.db"),
		MaxOpenConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })
	require.NoError(t, db.InitSchema(ctx, testDB, db.DialectFor(db.DriverSQLite)))

	return buildEngine(t, testDB, opts...)
}

func buildEngine(t *testing.T, testDB *sql.DB, opts ...engineOption) *testEngine {
	t.Helper()

	o := engineOptions{defs: guards.Definitions()}
	for _, opt := range opts {
		opt(&o)
	}

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	raw := sqlstore.NewStore(testDB, db.DialectFor(db.DriverSQLite))
	var store secondary.Store = raw
	if o.wrap != nil {
		store = o.wrap(raw)
	}

	registry, err := NewGuardRegistry(o.defs, workflow.Edges(), logger)
	require.NoError(t, err)

	writer := NewAuditWriter()
	wf := NewWorkflowService(store, registry, NewEffectExecutor(writer, logger), writer, logger, o.hooks...)

	return &testEngine{
		store:      store,
		raw:        raw,
		db:         testDB,
		logs:       logs,
		workflow:   wf,
		cases:      NewCaseService(store, writer, logger),
		clearances: NewClearanceService(store, writer, logger),
		reviews:    NewReviewService(store, wf, writer, logger),
		accounts:   NewAccountsService(store, wf, writer, logger),
		deeds:      NewDeedService(store, wf, writer, logger),
		audit:      NewAuditService(store, o.exporter),
	}
}

func stageIDOf(t *testing.T, code workflow.StageCode) int {
	t.Helper()
	s, ok := workflow.StageByCode(code)
	require.True(t, ok, "unknown stage %s", code)
	return s.ID
}

// seedCaseAt inserts a case directly at a stage, bypassing the engine.
func (e *testEngine) seedCaseAt(t *testing.T, id string, stage workflow.StageCode) string {
	t.Helper()
	err := e.raw.Cases().Create(context.Background(), &secondary.CaseRecord{
		ID:             id,
		CurrentStageID: stageIDOf(t, stage),
		Status:         workflow.CaseStatusActive,
		ApplicantName:  "Test Applicant",
		SellerRef:      "SELLER-1",
		BuyerRef:       "BUYER-1",
		PlotRef:        "PLOT-1",
		OwnerRef:       "SELLER-1",
		CreatedAt:      time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

// seedClearance inserts a clearance row directly.
func (e *testEngine) seedClearance(t *testing.T, caseID string, section workflow.Section, status workflow.ClearanceStatus) {
	t.Helper()
	err := e.raw.Clearances().Create(context.Background(), &secondary.ClearanceRecord{
		ID:      fmt.Sprintf("CLR-%s-%s", caseID, section),
		CaseID:  caseID,
		Section: string(section),
		Status:  string(status),
	})
	require.NoError(t, err)
}

// seedReview upserts a review verdict directly, without firing triggers.
func (e *testEngine) seedReview(t *testing.T, caseID string, section workflow.ReviewSection, status workflow.ReviewStatus) {
	t.Helper()
	err := e.raw.Reviews().Upsert(context.Background(), &secondary.ReviewRecord{
		ID:         fmt.Sprintf("REV-%s-%s", caseID, section),
		CaseID:     caseID,
		Section:    string(section),
		ReviewerID: "seed",
		Status:     string(status),
	})
	require.NoError(t, err)
}

// completeIntake records every required document and marks all originals
// seen except those listed in unseen.
func (e *testEngine) completeIntake(t *testing.T, caseID string, unseen ...string) {
	t.Helper()
	ctx := context.Background()
	skip := map[string]bool{}
	for _, d := range unseen {
		skip[d] = true
	}
	for _, docType := range intake.RequiredDocuments() {
		_, err := e.cases.RecordDocument(ctx, caseID, docType, clerk)
		require.NoError(t, err)
		if skip[docType] {
			continue
		}
		_, err = e.cases.MarkOriginalSeen(ctx, caseID, docType, clerk)
		require.NoError(t, err)
	}
}

func (e *testEngine) stageOf(t *testing.T, caseID string) workflow.StageCode {
	t.Helper()
	c, err := e.raw.Cases().GetByID(context.Background(), caseID)
	require.NoError(t, err)
	return workflow.StageCode(stageCode(c.CurrentStageID))
}

func (e *testEngine) auditActions(t *testing.T, caseID string) []string {
	t.Helper()
	entries, err := e.raw.Audit().ListByCase(context.Background(), caseID)
	require.NoError(t, err)
	actions := make([]string, len(entries))
	for i, en := range entries {
		actions[i] = en.Action
	}
	return actions
}

func countAction(actions []string, action workflow.Action) int {
	n := 0
	for _, a := range actions {
		if a == string(action) {
			n++
		}
	}
	return n
}

// gateStore holds the first n transactions until all n have been requested,
// so every caller has finished its pre-transaction reads before any commits.
type gateStore struct {
	secondary.Store
	mu      sync.Mutex
	waiting int
	open    chan struct{}
}

func newGateStore(n int) *gateStore {
	return &gateStore{waiting: n, open: make(chan struct{})}
}

func (s *gateStore) wrap(inner secondary.Store) secondary.Store {
	s.Store = inner
	return s
}

func (s *gateStore) WithTx(ctx context.Context, fn func(tx secondary.Repositories) error) error {
	s.mu.Lock()
	if s.waiting > 0 {
		s.waiting--
		if s.waiting == 0 {
			close(s.open)
		}
	}
	s.mu.Unlock()

	select {
	case <-s.open:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.Store.WithTx(ctx, fn)
}

// failingAuditStore fails every audit append made inside a transaction.
type failingAuditStore struct {
	secondary.Store
	err error
}

func (s failingAuditStore) WithTx(ctx context.Context, fn func(tx secondary.Repositories) error) error {
	return s.Store.WithTx(ctx, func(tx secondary.Repositories) error {
		return fn(failingAuditRepos{Repositories: tx, err: s.err})
	})
}

type failingAuditRepos struct {
	secondary.Repositories
	err error
}

func (r failingAuditRepos) Audit() secondary.AuditRepository {
	return failingAuditRepo{err: r.err}
}

type failingAuditRepo struct {
	err error
}

func (r failingAuditRepo) Append(ctx context.Context, e *secondary.AuditRecord) error {
	return r.err
}

func (r failingAuditRepo) ListByCase(ctx context.Context, caseID string) ([]*secondary.AuditRecord, error) {
	return nil, nil
}

// recordingHook captures the transitions it sees and returns err.
type recordingHook struct {
	seen []*primary.TransitionResponse
	err  error
}

func (h *recordingHook) Name() string { return "recording" }

func (h *recordingHook) AfterTransition(ctx context.Context, resp *primary.TransitionResponse) error {
	h.seen = append(h.seen, resp)
	return h.err
}

// capturingExporter keeps the rows it was asked to export.
type capturingExporter struct {
	caseID string
	rows   []secondary.AuditExportRow
}

func (c *capturingExporter) ExportAudit(w io.Writer, caseID string, rows []secondary.AuditExportRow) error {
	c.caseID = caseID
	c.rows = rows
	_, err := io.WriteString(w, "ok")
	return err
}
