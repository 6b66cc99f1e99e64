package sync

import (
	stderrors "errors"
	"testing"

	"github.com/Pradeep-10x/synapse-cli/pkg/errors"
)

// likeState is the local state a toggle mutates in these tests
type likeState struct {
	liked bool
	count int
}

func likeMutation(state *likeState, call func() (func(), error)) Mutation {
	prev := *state
	want := !state.liked
	return Mutation{
		EntityID: "post-1",
		Action:   "like the post",
		Apply: func() {
			state.liked = want
			if want {
				state.count++
			} else {
				state.count--
			}
		},
		Rollback: func() { *state = prev },
		Call:     call,
	}
}

func TestDoAppliesBeforeCall(t *testing.T) {
	state := &likeState{liked: false, count: 3}
	c := NewCoordinator()

	var seenDuringCall likeState
	err := c.Do(likeMutation(state, func() (func(), error) {
		seenDuringCall = *state
		return nil, nil
	}))
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !seenDuringCall.liked || seenDuringCall.count != 4 {
		t.Errorf("state during call = %+v, want optimistic change already applied", seenDuringCall)
	}
}

func TestDoRollbackOnFailure(t *testing.T) {
	state := &likeState{liked: false, count: 3}
	c := NewCoordinator()

	err := c.Do(likeMutation(state, func() (func(), error) {
		return nil, stderrors.New("500")
	}))
	if err == nil {
		t.Fatal("Do should fail when the call fails")
	}

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) || cliErr.Type != errors.ErrorTypeMutation {
		t.Errorf("error = %v, want mutation error", err)
	}

	// Round trip back to the exact pre-mutation state.
	if state.liked != false || state.count != 3 {
		t.Errorf("state after rollback = %+v, want {false 3}", *state)
	}
}

func TestDoReconcilesToAuthoritativeValue(t *testing.T) {
	state := &likeState{liked: false, count: 3}
	c := NewCoordinator()

	// The server saw another client's like in between, so its count
	// differs from the local guess of 4.
	err := c.Do(likeMutation(state, func() (func(), error) {
		return func() { state.liked = true; state.count = 5 }, nil
	}))
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if state.count != 5 {
		t.Errorf("count = %d, want the authoritative 5", state.count)
	}
}

func TestDoSecondToggleFailsFast(t *testing.T) {
	state := &likeState{}
	c := NewCoordinator()

	inCall := make(chan struct{})
	release := make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.Do(likeMutation(state, func() (func(), error) {
			close(inCall)
			<-release
			return nil, nil
		}))
	}()

	<-inCall

	if !c.Pending("post-1") {
		t.Error("Pending should report the in-flight mutation")
	}

	// Second toggle on the same entity while the first is in flight.
	err := c.Do(Mutation{
		EntityID: "post-1",
		Action:   "like the post",
		Apply:    func() { t.Error("second toggle must not apply") },
		Rollback: func() {},
		Call:     func() (func(), error) { return nil, nil },
	})

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) || cliErr.Type != errors.ErrorTypeMutationPending {
		t.Errorf("error = %v, want mutation-pending error", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Errorf("first toggle failed: %v", err)
	}

	if c.Pending("post-1") {
		t.Error("Pending should clear after completion")
	}
}

func TestDoDifferentEntitiesIndependent(t *testing.T) {
	c := NewCoordinator()

	inCall := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = c.Do(Mutation{
			EntityID: "post-1",
			Apply:    func() {},
			Rollback: func() {},
			Call: func() (func(), error) {
				close(inCall)
				<-release
				return nil, nil
			},
		})
	}()

	<-inCall
	defer close(release)

	applied := false
	err := c.Do(Mutation{
		EntityID: "post-2",
		Apply:    func() { applied = true },
		Rollback: func() {},
		Call:     func() (func(), error) { return nil, nil },
	})
	if err != nil {
		t.Errorf("mutation on a different entity should proceed: %v", err)
	}
	if !applied {
		t.Error("second entity's Apply did not run")
	}
}

func TestDoEntityFreeAfterFailure(t *testing.T) {
	state := &likeState{}
	c := NewCoordinator()

	_ = c.Do(likeMutation(state, func() (func(), error) {
		return nil, stderrors.New("boom")
	}))

	// A failed mutation releases the entity for the next attempt.
	err := c.Do(likeMutation(state, func() (func(), error) {
		return nil, nil
	}))
	if err != nil {
		t.Errorf("retry after failure should proceed: %v", err)
	}
}
