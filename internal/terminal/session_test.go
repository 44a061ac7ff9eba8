package terminal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pressTab(s *Session, backward bool, times int) []string {
	var got []string
	for i := 0; i < times; i++ {
		s.Complete(backward)
		got = append(got, s.Buffer())
	}
	return got
}

func TestTabCyclesForwardFromEmptyAnchor(t *testing.T) {
	f := newFixture(t, abcRegistry(t))
	f.session.Open()

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, pressTab(f.session, false, 6))
	assert.Equal(t, Cycling, f.session.State())
	anchor, ok := f.session.Anchor()
	assert.True(t, ok)
	assert.Equal(t, "", anchor)
}

func TestShiftTabCyclesBackwardFromEmptyAnchor(t *testing.T) {
	f := newFixture(t, abcRegistry(t))
	f.session.Open()

	assert.Equal(t, []string{"c", "b", "a", "c"}, pressTab(f.session, true, 4))
}

func TestTabDirectionCanChangeMidCycle(t *testing.T) {
	f := newFixture(t, abcRegistry(t))
	f.session.Open()

	f.session.Complete(false)
	f.session.Complete(false)
	require.Equal(t, "b", f.session.Buffer())
	f.session.Complete(true)
	assert.Equal(t, "a", f.session.Buffer())
	f.session.Complete(true)
	assert.Equal(t, "c", f.session.Buffer())
}

func TestSingleCandidateCompletesAndClearsCycle(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("pro")

	f.session.Complete(false)

	assert.Equal(t, "projects", f.session.Buffer())
	assert.Equal(t, -1, f.session.Cursor())
	_, ok := f.session.Anchor()
	assert.False(t, ok)
	assert.Equal(t, AwaitingInput, f.session.State())
}

func TestAnchorStaysFixedWhileCycling(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("  C")

	got := pressTab(f.session, false, 4)

	assert.Equal(t, []string{"contact", "clear", "cls", "contact"}, got)
	anchor, _ := f.session.Anchor()
	assert.Equal(t, "c", anchor)
}

func TestNoCandidatesLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("zzz")

	f.session.Complete(false)

	assert.Equal(t, "zzz", f.session.Buffer())
	assert.Equal(t, -1, f.session.Cursor())
	assert.Equal(t, AwaitingInput, f.session.State())
}

func TestTypingCancelsCycle(t *testing.T) {
	f := newFixture(t, abcRegistry(t))
	f.session.Open()
	f.session.Complete(false)
	f.session.Complete(false)
	require.Equal(t, Cycling, f.session.State())

	f.session.SetInput("b x")

	assert.Equal(t, AwaitingInput, f.session.State())
	assert.Equal(t, -1, f.session.Cursor())
	assert.Equal(t, []string{"b", "x"}, f.session.Tokens())

	f.session.Complete(false)
	assert.Equal(t, "b x", f.session.Buffer(), "no command starts with the new buffer")
}

func TestTokensSplitOnSingleSpaces(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("goto  about")
	assert.Equal(t, []string{"goto", "", "about"}, f.session.Tokens())

	f.session.SetInput("")
	assert.Empty(t, f.session.Tokens())
}

func TestOpenShowsTipAndCloseDiscardsState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	assert.Equal(t, Idle, f.session.State())

	f.session.Open()
	assert.Equal(t, AwaitingInput, f.session.State())
	transcript := f.session.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, TipEntry, transcript[0].Kind)
	assert.Contains(t, transcript[0].Output.String(), "Tab")

	f.session.SetInput("about")
	f.session.Submit(ctx)
	f.session.SetInput("hel")
	require.Len(t, f.session.Transcript(), 2)

	f.session.Close()
	assert.Equal(t, Idle, f.session.State())
	assert.Empty(t, f.session.Transcript())

	f.session.Open()
	assert.Len(t, f.session.Transcript(), 1)
	assert.Equal(t, "", f.session.Buffer())
}

func TestSubmitWhitespaceIsNoOp(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("   ")

	res := f.session.Submit(context.Background())

	assert.Equal(t, Ignored, res.Action)
	assert.Len(t, f.session.Transcript(), 1)
	assert.Equal(t, "   ", f.session.Buffer())
}

func TestClearEmptiesTranscriptWithoutAppending(t *testing.T) {
	ctx := context.Background()
	for _, input := range []string{"clear", "  CLS  ", "Clear"} {
		f := newFixture(t, nil)
		f.session.Open()
		f.session.SetInput("about")
		f.session.Submit(ctx)

		f.session.SetInput(input)
		res := f.session.Submit(ctx)

		assert.Equal(t, Cleared, res.Action, input)
		assert.Empty(t, f.session.Transcript(), input)
		assert.Equal(t, "", f.session.Buffer(), input)
		assert.Equal(t, AwaitingInput, f.session.State(), input)
	}
}

func TestExitClosesWithoutEntry(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput(" EXIT ")

	res := f.session.Submit(context.Background())

	assert.Equal(t, Closed, res.Action)
	assert.Equal(t, Idle, f.session.State())
	assert.Empty(t, f.session.Transcript())
}

func TestSubmitAppendsEchoAndOutput(t *testing.T) {
	f := newFixture(t, nil)
	f.session.Open()
	f.session.SetInput("  HELP me ")

	res := f.session.Submit(context.Background())

	require.Equal(t, Appended, res.Action)
	assert.Equal(t, "HELP me", res.Entry.Input)
	assert.Equal(t, []Token{{Text: "HELP", Accepted: true}, {Text: "me", Accepted: false}}, res.Entry.Echo)
	assert.Equal(t, `The term 'help me' is not recognized. Type "help" or "cls".`, res.Entry.Output.String())
	assert.NotEqual(t, [16]byte{}, [16]byte(res.Entry.ID))

	transcript := f.session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, res.Entry, transcript[1])
	assert.Equal(t, "", f.session.Buffer())
	assert.Equal(t, -1, f.session.Cursor())
}

func TestClosedSessionIgnoresInput(t *testing.T) {
	f := newFixture(t, nil)
	f.session.SetInput("help")
	f.session.Complete(false)

	assert.Equal(t, "", f.session.Buffer())
	assert.Equal(t, Ignored, f.session.Submit(context.Background()).Action)
}
