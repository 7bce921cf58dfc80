package soa

import "testing"

type recordingListener struct {
	order *[]string
	name  string
}

func (l recordingListener) ProcessAdd(data string) error {
	*l.order = append(*l.order, l.name+":add:"+data)
	return nil
}

func (l recordingListener) ProcessRemove(data string) error {
	*l.order = append(*l.order, l.name+":remove:"+data)
	return nil
}

func (l recordingListener) ProcessUpdate(data string) error {
	*l.order = append(*l.order, l.name+":update:"+data)
	return nil
}

func TestListenerSetNotifiesInRegistrationOrder(t *testing.T) {
	var order []string
	var set ListenerSet[string]
	set.AddListener(recordingListener{order: &order, name: "a"})
	set.AddListener(recordingListener{order: &order, name: "b"})

	if err := set.NotifyAdd("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a:add:x", "b:add:x"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestGetListenersReturnsRegisteredSlice(t *testing.T) {
	var set ListenerSet[string]
	if len(set.GetListeners()) != 0 {
		t.Fatalf("expected empty listener set")
	}
	l := recordingListener{order: &[]string{}, name: "a"}
	set.AddListener(l)
	if len(set.GetListeners()) != 1 {
		t.Fatalf("expected one listener")
	}
}

func TestNotifyStopsAtFirstError(t *testing.T) {
	var order []string
	var set ListenerSet[string]
	set.AddListener(recordingListener{order: &order, name: "a"})
	set.AddListener(failingListener{})
	set.AddListener(recordingListener{order: &order, name: "c"})

	err := set.NotifyAdd("x")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(order) != 1 {
		t.Fatalf("expected propagation to stop after first listener, got %v", order)
	}
}

type failingListener struct{}

func (failingListener) ProcessAdd(string) error    { return errTest }
func (failingListener) ProcessRemove(string) error { return errTest }
func (failingListener) ProcessUpdate(string) error { return errTest }

var errTest = &testErr{"boom"}

type testErr struct{ msg string }

func (e *testErr) Error() string { return e.msg }
