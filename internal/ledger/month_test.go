package ledger_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
)

var _ = Describe("MonthRange", func() {
	It("should span February 29 days in a leap year", func() {
		start, end, err := ledger.MonthRange(2024, 2, time.UTC)

		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
		Expect(end.Day()).To(Equal(29))
		Expect(end.Hour()).To(Equal(23))
		Expect(end.Minute()).To(Equal(59))
		Expect(end.Second()).To(Equal(59))
		Expect(end.Add(time.Nanosecond)).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should span February 28 days in a common year", func() {
		_, end, err := ledger.MonthRange(2023, 2, time.UTC)

		Expect(err).NotTo(HaveOccurred())
		Expect(end.Day()).To(Equal(28))
		Expect(end.Add(time.Nanosecond)).To(Equal(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should end December on the 31st and roll into the next year", func() {
		start, end, err := ledger.MonthRange(2024, 12, time.UTC)

		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
		Expect(end.Day()).To(Equal(31))
		Expect(end.Add(time.Nanosecond)).To(Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should handle 30-day months", func() {
		_, end, err := ledger.MonthRange(2024, 4, time.UTC)

		Expect(err).NotTo(HaveOccurred())
		Expect(end.Day()).To(Equal(30))
	})

	It("should reject months outside 1..12", func() {
		for _, month := range []int{0, 13, -1} {
			_, _, err := ledger.MonthRange(2024, month, time.UTC)
			Expect(err).To(Equal(internal.ErrInvalidMonth))
		}
	})

	Describe("InRange", func() {
		start, end, _ := ledger.MonthRange(2024, 2, time.UTC)

		It("should include both boundaries", func() {
			Expect(ledger.InRange(start, start, end)).To(BeTrue())
			Expect(ledger.InRange(end, start, end)).To(BeTrue())
		})

		It("should exclude instants outside the month", func() {
			Expect(ledger.InRange(start.Add(-time.Nanosecond), start, end)).To(BeFalse())
			Expect(ledger.InRange(end.Add(time.Nanosecond), start, end)).To(BeFalse())
		})
	})
})
