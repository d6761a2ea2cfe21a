package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_DeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()

	var got1, got2 []Reason
	n.Subscribe(func(r Reason) { got1 = append(got1, r) })
	n.Subscribe(func(r Reason) { got2 = append(got2, r) })

	n.Emit(ReasonRefreshFailed)
	n.Emit(ReasonLoggedOut)

	assert.Equal(t, []Reason{ReasonRefreshFailed, ReasonLoggedOut}, got1)
	assert.Equal(t, []Reason{ReasonRefreshFailed, ReasonLoggedOut}, got2)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	var got []Reason
	unsub := n.Subscribe(func(r Reason) { got = append(got, r) })

	n.Emit(ReasonUnauthorized)
	unsub()
	n.Emit(ReasonLoggedOut)
	unsub() // second call is harmless

	assert.Equal(t, []Reason{ReasonUnauthorized}, got)
}

func TestNotifier_EmitWithoutSubscribersIsFine(t *testing.T) {
	n := NewNotifier()
	n.Emit(ReasonLoggedOut)
}
