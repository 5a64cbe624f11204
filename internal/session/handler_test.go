package session_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/core/events"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
	"github.com/FabricioUDB/control-gastos/internal/session"
)

var _ = Describe("Session Handler Integration", func() {
	var (
		remote  *mockRemoteLedger
		manager *session.Manager
		handler *session.Handler
		router  *chi.Mux
	)

	const userID = "user-1"

	identity := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get("X-User-ID"); id != "" {
				r = r.WithContext(internal.ContextWithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}

	doRequest := func(method, target string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(payload)
		} else {
			reader = bytes.NewReader(nil)
		}

		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", userID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeSnapshot := func(w *httptest.ResponseRecorder) session.Snapshot {
		var snap session.Snapshot
		Expect(json.NewDecoder(w.Body).Decode(&snap)).To(Succeed())
		return snap
	}

	BeforeEach(func() {
		remote = newMockRemoteLedger()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewBus(slogger)
		manager = session.NewManager(remote, bus, slogger, time.UTC)
		handler = session.NewHandler(manager)

		router = chi.NewRouter()
		router.Use(identity)
		router.Get("/ledger", handler.GetLedger)
		router.Get("/ledger/{year}/{month}", handler.LoadMonth)
		router.Put("/ledger/filter", handler.SetFilter)
		router.Post("/expenses", handler.AddExpense)
		router.Patch("/expenses/{id}", handler.EditExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
		router.Post("/session/signout", handler.SignOut)
		router.Get("/categories", handler.GetCategories)

		remote.loadResult = []ledger.Record{
			{
				ID:         "a",
				Name:       "Supermercado",
				Category:   "Alimentación",
				Amount:     80,
				OccurredAt: time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
				CreatedAt:  time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:         "b",
				Name:       "Bus",
				Category:   "Transporte",
				Amount:     20,
				OccurredAt: time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC),
				CreatedAt:  time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC),
			},
		}
	})

	It("should load a month and return the snapshot", func() {
		w := doRequest(http.MethodGet, "/ledger/2024/5", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		snap := decodeSnapshot(w)
		Expect(snap.Year).To(Equal(2024))
		Expect(snap.Month).To(Equal(5))
		Expect(snap.Records).To(HaveLen(2))
		Expect(snap.GrandTotal).To(BeNumerically("~", 100, 1e-9))
	})

	It("should reject a month outside the calendar", func() {
		w := doRequest(http.MethodGet, "/ledger/2024/13", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a non-numeric month", func() {
		w := doRequest(http.MethodGet, "/ledger/2024/mayo", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should create an expense and return it with its ID", func() {
		doRequest(http.MethodGet, "/ledger/2024/5", nil)

		w := doRequest(http.MethodPost, "/expenses", session.ExpenseForm{
			Name:     "Cena",
			Category: "Alimentación",
			Amount:   "12.50",
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		var record ledger.Record
		Expect(json.NewDecoder(w.Body).Decode(&record)).To(Succeed())
		Expect(record.ID).To(Equal("id-1"))
		Expect(record.Amount).To(BeNumerically("~", 12.5, 1e-9))
	})

	It("should map validation failures to bad request", func() {
		w := doRequest(http.MethodPost, "/expenses", session.ExpenseForm{
			Name:     "Cena",
			Category: "Alimentación",
			Amount:   "-3",
		})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should map remote failures to bad gateway", func() {
		remote.loadErr = errTest

		w := doRequest(http.MethodGet, "/ledger/2024/5", nil)

		Expect(w.Code).To(Equal(http.StatusBadGateway))
	})

	It("should edit an expense and return the fresh snapshot", func() {
		doRequest(http.MethodGet, "/ledger/2024/5", nil)

		w := doRequest(http.MethodPatch, "/expenses/a", session.ExpenseForm{
			Name:     "Mercado",
			Category: "Hogar",
			Amount:   "95",
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		snap := decodeSnapshot(w)
		Expect(snap.GrandTotal).To(BeNumerically("~", 115, 1e-9))
	})

	It("should delete an expense and return the fresh snapshot", func() {
		doRequest(http.MethodGet, "/ledger/2024/5", nil)

		w := doRequest(http.MethodDelete, "/expenses/a", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		snap := decodeSnapshot(w)
		Expect(snap.Records).To(HaveLen(1))
		Expect(snap.GrandTotal).To(BeNumerically("~", 20, 1e-9))
	})

	It("should apply and toggle the category filter", func() {
		doRequest(http.MethodGet, "/ledger/2024/5", nil)

		food := "Alimentación"
		w := doRequest(http.MethodPut, "/ledger/filter", session.SetFilterDTO{Category: &food})
		Expect(w.Code).To(Equal(http.StatusOK))
		snap := decodeSnapshot(w)
		Expect(snap.Records).To(HaveLen(1))
		Expect(*snap.Filter).To(Equal("Alimentación"))

		w = doRequest(http.MethodPut, "/ledger/filter", session.SetFilterDTO{Category: &food})
		snap = decodeSnapshot(w)
		Expect(snap.Filter).To(BeNil())
		Expect(snap.Records).To(HaveLen(2))
	})

	It("should sign out and build a fresh session on the next request", func() {
		doRequest(http.MethodGet, "/ledger/2024/5", nil)
		Expect(manager.Active()).To(Equal(1))

		w := doRequest(http.MethodPost, "/session/signout", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(manager.Active()).To(BeZero())

		w = doRequest(http.MethodGet, "/ledger", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		snap := decodeSnapshot(w)
		Expect(snap.Records).To(BeEmpty())
	})

	It("should refuse requests without an identity", func() {
		req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should serve the suggested categories", func() {
		w := doRequest(http.MethodGet, "/categories", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response struct {
			Categories []string `json:"categories"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(ContainElement("Alimentación"))
		Expect(response.Categories).To(HaveLen(10))
	})
})
