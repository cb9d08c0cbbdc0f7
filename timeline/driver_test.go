package timeline

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Driver", func() {
	var (
		tl *Timeline
		d  *Driver
	)

	BeforeEach(func() {
		tl = New()
		d = NewDriver(tl, 200*Hz)
	})

	AfterEach(func() {
		d.Stop()
	})

	It("should advance the timeline as wall time passes", func() {
		d.Start()

		Eventually(tl.Position).
			WithTimeout(time.Second).
			Should(BeNumerically(">", 0))
	})

	It("should fire scheduled events while running", func() {
		done := make(chan struct{})
		_, _ = tl.RegisterEvent(30, func() { close(done) }, NoUndo)

		d.Start()

		Eventually(done).WithTimeout(time.Second).Should(BeClosed())
	})

	It("should withhold ticks while paused", func() {
		d.Start()
		Eventually(tl.Position).
			WithTimeout(time.Second).
			Should(BeNumerically(">", 0))

		d.Pause()
		Expect(d.IsPaused()).To(BeTrue())
		time.Sleep(20 * time.Millisecond) // let an in-flight tick land

		frozen := tl.Position()
		Consistently(tl.Position, "100ms", "10ms").Should(Equal(frozen))

		d.Continue()
		Eventually(tl.Position).
			WithTimeout(time.Second).
			Should(BeNumerically(">", frozen))
	})

	It("should relinquish the timeline once Pause returns", func() {
		entered := make(chan struct{})
		release := make(chan struct{})
		_, _ = tl.RegisterEvent(1, func() {
			close(entered)
			<-release
		}, NoUndo)

		d.Start()
		Eventually(entered).WithTimeout(time.Second).Should(BeClosed())

		go func() {
			time.Sleep(50 * time.Millisecond)
			close(release)
		}()

		// Pause must block until the tick stuck in the handler finishes.
		d.Pause()

		Expect(tl.Seek(100)).To(Succeed())
		Expect(tl.Position()).To(Equal(VTime(100)))
	})

	It("should not count the paused interval as elapsed time", func() {
		d.Start()
		d.Pause()
		time.Sleep(100 * time.Millisecond)

		d.Continue()
		time.Sleep(50 * time.Millisecond)
		d.Pause()
		time.Sleep(20 * time.Millisecond)

		// Well under the 120ms of wall time that passed in total.
		Expect(float64(tl.Position())).To(BeNumerically("<", 100))
	})

	It("should hold the position still at timescale 0", func() {
		Expect(tl.SetTimescale(0)).To(Succeed())
		d.Start()

		Consistently(tl.Position, "100ms", "10ms").Should(Equal(VTime(0)))
	})

	It("should tolerate repeated starts and stops", func() {
		d.Start()
		d.Start()
		d.Stop()
		d.Stop()

		d.Start()
		Eventually(tl.Position).
			WithTimeout(time.Second).
			Should(BeNumerically(">", 0))
	})
})

var _ = Describe("Play", func() {
	It("should run a one-shot tween to completion", func() {
		var values []float64

		err := Play(50, 0, func(v float64) { values = append(values, v) })

		Expect(err).ToNot(HaveOccurred())
		Expect(values[0]).To(Equal(0.0))
		Expect(values[len(values)-1]).To(Equal(1.0))
		for i := 1; i < len(values); i++ {
			Expect(values[i]).To(BeNumerically(">=", values[i-1]))
		}
	})

	It("should complete a zero-duration play immediately", func() {
		var values []float64

		err := Play(0, 0, func(v float64) { values = append(values, v) })

		Expect(err).ToNot(HaveOccurred())
		Expect(values).To(Equal([]float64{1}))
	})

	It("should reject a negative duration", func() {
		err := Play(-1, 0, func(float64) {})
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})

	It("should reject a nil apply callback", func() {
		err := Play(10, 0, nil)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})
})
