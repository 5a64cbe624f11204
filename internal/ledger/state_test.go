package ledger_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FabricioUDB/control-gastos/internal/ledger"
)

var _ = Describe("State", func() {
	var (
		state      *ledger.State
		start, end time.Time
	)

	dated := func(id string, day int) ledger.Record {
		return ledger.Record{
			ID:         id,
			Name:       "expense " + id,
			Category:   "Food",
			Amount:     10,
			OccurredAt: time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
			CreatedAt:  time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
		}
	}

	BeforeEach(func() {
		state = ledger.NewState()
		start, end, _ = ledger.MonthRange(2024, 5, time.UTC)
	})

	Describe("Load", func() {
		It("should re-sort by occurrence date descending", func() {
			state.Load(start, end, []ledger.Record{dated("a", 3), dated("b", 20), dated("c", 11)})

			records := state.Records()
			Expect(records[0].ID).To(Equal("b"))
			Expect(records[1].ID).To(Equal("c"))
			Expect(records[2].ID).To(Equal("a"))
		})

		It("should break occurrence-date ties by ID ascending", func() {
			same := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
			r1 := dated("z", 10)
			r1.OccurredAt = same
			r2 := dated("a", 10)
			r2.OccurredAt = same

			state.Load(start, end, []ledger.Record{r1, r2})

			records := state.Records()
			Expect(records[0].ID).To(Equal("a"))
			Expect(records[1].ID).To(Equal("z"))
		})

		It("should replace any previous contents", func() {
			state.Load(start, end, []ledger.Record{dated("a", 3)})
			state.Load(start, end, []ledger.Record{dated("b", 5)})

			Expect(state.Len()).To(Equal(1))
			_, found := state.Find("a")
			Expect(found).To(BeFalse())
		})
	})

	Describe("InsertLocal", func() {
		BeforeEach(func() {
			state.Load(start, end, []ledger.Record{dated("a", 3)})
		})

		It("should insert a record dated inside the loaded period", func() {
			visible := state.InsertLocal(dated("b", 15))

			Expect(visible).To(BeTrue())
			Expect(state.Len()).To(Equal(2))
			records := state.Records()
			Expect(records[0].ID).To(Equal("b"))
		})

		It("should omit a record dated outside the loaded period", func() {
			outside := dated("x", 1)
			outside.OccurredAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

			visible := state.InsertLocal(outside)

			Expect(visible).To(BeFalse())
			Expect(state.Len()).To(Equal(1))
			_, found := state.Find("x")
			Expect(found).To(BeFalse())
		})

		It("should keep the boundary instants inside", func() {
			onStart := dated("s", 1)
			onStart.OccurredAt = start
			onEnd := dated("e", 1)
			onEnd.OccurredAt = end

			Expect(state.InsertLocal(onStart)).To(BeTrue())
			Expect(state.InsertLocal(onEnd)).To(BeTrue())
		})
	})

	Describe("UpdateLocal", func() {
		var original ledger.Record

		BeforeEach(func() {
			original = dated("a", 3)
			original.Note = "original note"
			state.Load(start, end, []ledger.Record{original})
		})

		It("should patch the editable fields only", func() {
			updated := state.UpdateLocal("a", ledger.Patch{
				Name:     "new name",
				Category: "Transport",
				Amount:   99.5,
				Note:     "new note",
			})

			Expect(updated).To(BeTrue())
			r, _ := state.Find("a")
			Expect(r.Name).To(Equal("new name"))
			Expect(r.Category).To(Equal("Transport"))
			Expect(r.Amount).To(Equal(99.5))
			Expect(r.Note).To(Equal("new note"))
			Expect(r.OccurredAt).To(Equal(original.OccurredAt))
			Expect(r.CreatedAt).To(Equal(original.CreatedAt))
		})

		It("should be a no-op for an absent ID", func() {
			before := state.Records()
			Expect(state.UpdateLocal("missing", ledger.Patch{Name: "x", Category: "y", Amount: 1})).To(BeFalse())
			Expect(state.Records()).To(Equal(before))
		})
	})

	Describe("DeleteLocal", func() {
		BeforeEach(func() {
			state.Load(start, end, []ledger.Record{dated("a", 3), dated("b", 5)})
		})

		It("should remove the record with the given ID", func() {
			Expect(state.DeleteLocal("a")).To(BeTrue())
			Expect(state.Len()).To(Equal(1))
			_, found := state.Find("a")
			Expect(found).To(BeFalse())
		})

		It("should leave state unchanged for an absent ID", func() {
			before := state.Records()
			Expect(state.DeleteLocal("missing")).To(BeFalse())
			Expect(state.Records()).To(Equal(before))
		})
	})

	Describe("Records", func() {
		It("should return a copy, not the internal slice", func() {
			state.Load(start, end, []ledger.Record{dated("a", 3)})

			records := state.Records()
			records[0].Name = "tampered"

			r, _ := state.Find("a")
			Expect(r.Name).To(Equal("expense a"))
		})
	})
})
