package vector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/diag"
)

// recorder captures what a reporter was handed.
type recorder struct {
	calls     int
	positions []int
	messages  []string
	err       error
}

func (r *recorder) ReportProblems(positions []int, messages []string) error {
	r.calls++
	r.positions = append([]int(nil), positions...)
	r.messages = append([]string(nil), messages...)
	return r.err
}

func parseToken(tok string) (cellid.ID, error) { return cellid.FromToken(tok) }

func TestRunMissingPropagation(t *testing.T) {
	calls := 0
	op := New("to-token", IDs, Tokens, func(id cellid.ID) (string, error) {
		calls++
		return id.ToToken(), nil
	}, Config{})

	id, err := cellid.FromLngLat(-122.4, 37.7)
	require.NoError(t, err)
	out, err := op.Run(context.Background(), []cellid.ID{cellid.Missing, id, cellid.Missing})
	require.NoError(t, err)
	assert.Equal(t, []string{"", id.ToToken(), ""}, out)
	assert.Equal(t, 1, calls)
}

func TestRunFailureIsolation(t *testing.T) {
	rec := &recorder{err: errors.New("consolidated")}
	op := New("from-token", Tokens, IDs, parseToken, Config{Reporter: rec})

	out, err := op.Run(context.Background(), []string{"89c25c", "INVALID", ""})
	require.EqualError(t, err, "consolidated")
	require.Len(t, out, 3)
	assert.Equal(t, cellid.ID(0x89c25c0000000000), out[0])
	assert.True(t, out[1].IsMissing())
	assert.True(t, out[2].IsMissing())

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, []int{1}, rec.positions)
	assert.Equal(t, []string{"invalid token"}, rec.messages)
}

func TestRunDefaultReporterIsProblems(t *testing.T) {
	op := New("from-token", Tokens, IDs, parseToken, Config{})
	out, err := op.Run(context.Background(), []string{"zz", "89c25c", "!!", "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrProblems)
	require.Len(t, out, 4)

	p, ok := diag.AsProblems(err)
	require.True(t, ok)
	assert.Equal(t, "from-token", p.Op)
	assert.Equal(t, []int{0, 2}, p.Positions())
}

func TestRunLogIsOrdered(t *testing.T) {
	rec := &recorder{}
	op := New("odd", Levels, Levels, func(v int) (int, error) {
		if v%2 == 1 {
			return 0, fmt.Errorf("odd value %d", v)
		}
		return v / 2, nil
	}, Config{Reporter: rec})

	in := make([]int, 5000)
	for i := range in {
		in[i] = i
	}
	out, err := op.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	require.Len(t, rec.positions, 2500)
	for i := 1; i < len(rec.positions); i++ {
		require.Less(t, rec.positions[i-1], rec.positions[i])
	}
	assert.Equal(t, MissingLevel, out[1])
	assert.Equal(t, 2, out[4])
	assert.Equal(t, "odd value 4999", rec.messages[len(rec.messages)-1])
}

func TestRunEmptyLogSkipsReporter(t *testing.T) {
	rec := &recorder{err: errors.New("must not be returned")}
	op := New("is-valid", IDs, Flags, func(id cellid.ID) (Flag, error) {
		return FlagOf(id.IsValid()), nil
	}, Config{Reporter: rec})

	valid, err := cellid.FromLngLat(0, 0)
	require.NoError(t, err)
	out, err := op.Run(context.Background(), []cellid.ID{valid, 0, cellid.Missing})
	require.NoError(t, err)
	assert.Equal(t, []Flag{True, False, Unknown}, out)
	assert.Zero(t, rec.calls)
}

func TestRunEmptyBatch(t *testing.T) {
	op := New("to-token", IDs, Tokens, func(id cellid.ID) (string, error) { return id.ToToken(), nil }, Config{})
	out, err := op.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestRunCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := New("from-token", Tokens, IDs, parseToken, Config{Reporter: rec})
	out, err := op.Run(ctx, []string{"INVALID", "89c25c"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rec.calls)
}

func TestRunCancelledMidPass(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := 0
	op := New("count", Levels, Levels, func(v int) (int, error) {
		seen++
		if v == 1500 {
			cancel()
		}
		return 0, errors.New("always fails")
	}, Config{Reporter: rec, CheckEvery: 1000})

	in := make([]int, 5000)
	for i := range in {
		in[i] = i
	}
	out, err := op.Run(ctx, in)
	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "at position 2000")
	assert.Equal(t, 2000, seen)
	assert.Zero(t, rec.calls)
}

func TestScanReturnsRawLog(t *testing.T) {
	op := New("from-token", Tokens, IDs, parseToken, Config{})
	out, log, err := op.Scan(context.Background(), []string{"bad!", "", "89c25c"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []Problem{{Pos: 0, Msg: "invalid token"}}, log)
}

func TestScanWithoutTransform(t *testing.T) {
	op := &Operator[string, cellid.ID]{Name: "empty", In: Tokens, Out: IDs}
	_, _, err := op.Scan(context.Background(), []string{"1"})
	require.Error(t, err)
}

func TestProgressEvents(t *testing.T) {
	var events []Event
	sink := FileSink{File: "ids.txt", Next: SinkFunc(func(e Event) { events = append(events, e) })}
	op := New("level", Levels, Levels, func(v int) (int, error) { return v, nil }, Config{CheckEvery: 10, Progress: sink})

	in := make([]int, 25)
	_, err := op.Run(context.Background(), in)
	require.NoError(t, err)

	// start, chunks at 10 and 20, final
	require.Len(t, events, 4)
	assert.Equal(t, StatusWorking, events[0].Status)
	assert.Equal(t, 10, events[1].Done)
	assert.Equal(t, 20, events[2].Done)
	last := events[3]
	assert.Equal(t, StatusDone, last.Status)
	assert.Equal(t, "level", last.Op)
	assert.Equal(t, "ids.txt", last.File)
	assert.InDelta(t, 1.0, last.Fraction(), 1e-12)
}

func TestProgressReportsProblems(t *testing.T) {
	ch := make(chan Event, 8)
	op := New("from-token", Tokens, IDs, parseToken, Config{Progress: ChannelSink{Ch: ch}, Reporter: &recorder{}})
	_, err := op.Run(context.Background(), []string{"INVALID"})
	require.NoError(t, err)
	close(ch)

	var last Event
	for e := range ch {
		last = e
	}
	assert.Equal(t, StatusProblems, last.Status)
	assert.Equal(t, 1, last.Problems)
}

func TestReporterFunc(t *testing.T) {
	var got []int
	r := ReporterFunc(func(positions []int, _ []string) error {
		got = positions
		return nil
	})
	op := New("from-token", Tokens, IDs, parseToken, Config{Reporter: r})
	_, err := op.Run(context.Background(), []string{"89c25c", "nope", "nope"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "TRUE", True.String())
	assert.Equal(t, "FALSE", False.String())
	assert.Equal(t, "NA", Unknown.String())
	assert.Equal(t, True, FlagOf(true))
}

func TestEventFraction(t *testing.T) {
	assert.Zero(t, Event{Status: StatusWorking}.Fraction())
	assert.Equal(t, 1.0, Event{Status: StatusDone}.Fraction())
	assert.InDelta(t, 0.5, Event{Done: 5, Total: 10}.Fraction(), 1e-12)
}
