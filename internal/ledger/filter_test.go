package ledger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FabricioUDB/control-gastos/internal/ledger"
)

var _ = Describe("Filter", func() {
	var filter *ledger.Filter

	category := func(c string) *string { return &c }

	BeforeEach(func() {
		filter = ledger.NewFilter()
	})

	It("should start unfiltered", func() {
		Expect(filter.Active()).To(BeNil())
	})

	It("should select a category", func() {
		filter.Set(category("Food"))
		Expect(*filter.Active()).To(Equal("Food"))
	})

	It("should toggle off when the active category is selected again", func() {
		filter.Set(category("Food"))
		filter.Set(category("Food"))
		Expect(filter.Active()).To(BeNil())
	})

	It("should switch when a different category is selected", func() {
		filter.Set(category("Food"))
		filter.Set(category("Transport"))
		Expect(*filter.Active()).To(Equal("Transport"))
	})

	It("should always clear on nil", func() {
		filter.Set(category("Food"))
		filter.Set(nil)
		Expect(filter.Active()).To(BeNil())

		filter.Set(nil)
		Expect(filter.Active()).To(BeNil())
	})

	It("should apply the selection to a record list", func() {
		records := []ledger.Record{
			{ID: "a", Category: "Food", Amount: 1},
			{ID: "b", Category: "Transport", Amount: 1},
		}

		filter.Set(category("Transport"))
		filtered := filter.Apply(records)
		Expect(filtered).To(HaveLen(1))
		Expect(filtered[0].ID).To(Equal("b"))

		filter.Clear()
		Expect(filter.Apply(records)).To(Equal(records))
	})
})
