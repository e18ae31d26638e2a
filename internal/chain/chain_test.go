package chain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given tasks whose latencies would finish out of order if run together", t, func() {
		var running, peak atomic.Int32
		delays := map[string]time.Duration{"a": 30 * time.Millisecond, "b": 1 * time.Millisecond, "c": 10 * time.Millisecond}

		task := func(name string) Task[string] {
			return func(ctx context.Context) (string, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(delays[name])
				running.Add(-1)
				return name, nil
			}
		}

		var got []string
		err := Run(context.Background(), []Task[string]{task("a"), task("b"), task("c")}, func(v string) error {
			got = append(got, v)
			return nil
		})

		Convey("Results are accumulated in submission order", func() {
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("No two tasks ever ran at the same time", func() {
			So(peak.Load(), ShouldEqual, int32(1))
		})
	})

	Convey("Given a task that fails midway", t, func() {
		boom := errors.New("boom")
		var started []int
		mk := func(i int, err error) Task[int] {
			return func(context.Context) (int, error) {
				started = append(started, i)
				return i, err
			}
		}

		var got []int
		err := Run(context.Background(), []Task[int]{mk(1, nil), mk(2, boom), mk(3, nil)}, func(v int) error {
			got = append(got, v)
			return nil
		})

		Convey("The chain stops and returns the wrapped error", func() {
			So(errors.Is(err, boom), ShouldBeTrue)
			So(started, ShouldResemble, []int{1, 2})
		})

		Convey("Results settled before the failure are kept", func() {
			So(got, ShouldResemble, []int{1})
		})
	})

	Convey("An empty task list is a no-op", t, func() {
		called := false
		err := Run(context.Background(), nil, func(int) error { called = true; return nil })
		So(err, ShouldBeNil)
		So(called, ShouldBeFalse)
	})

	Convey("A cancelled context stops before the next task", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		count := 0
		tasks := []Task[int]{
			func(context.Context) (int, error) { count++; cancel(); return 1, nil },
			func(context.Context) (int, error) { count++; return 2, nil },
		}

		err := Run(ctx, tasks, nil)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		So(count, ShouldEqual, 1)
	})

	Convey("WithDelay spaces tasks apart", t, func() {
		var stamps []time.Time
		tick := func(context.Context) (int, error) {
			stamps = append(stamps, time.Now())
			return 0, nil
		}

		err := Run(context.Background(), []Task[int]{tick, tick}, nil, WithDelay(20*time.Millisecond))
		So(err, ShouldBeNil)
		So(stamps[1].Sub(stamps[0]) >= 20*time.Millisecond, ShouldBeTrue)
	})
}

func TestCollect(t *testing.T) {
	Convey("Collect returns partial results on failure", t, func() {
		tasks := []Task[string]{
			func(context.Context) (string, error) { return "x", nil },
			func(context.Context) (string, error) { return "", errors.New("nope") },
		}

		out, err := Collect(context.Background(), tasks)
		So(err, ShouldNotBeNil)
		So(out, ShouldResemble, []string{"x"})
	})
}
