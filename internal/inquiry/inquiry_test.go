package inquiry

import (
	"strings"
	"testing"

	"tradingpipeline/internal/model"
)

type recordingListener struct {
	adds []model.Inquiry[model.Bond]
}

func (l *recordingListener) ProcessAdd(data model.Inquiry[model.Bond]) error {
	l.adds = append(l.adds, data)
	return nil
}
func (l *recordingListener) ProcessRemove(model.Inquiry[model.Bond]) error { return nil }
func (l *recordingListener) ProcessUpdate(model.Inquiry[model.Bond]) error { return nil }

func TestOnMessageNotifiesExactlyOnceAndResolvesToDone(t *testing.T) {
	svc := New()
	listener := &recordingListener{}
	svc.AddListener(listener)

	line := "INQ1,91282CAV3,BUY,1000000,99-160,RECEIVED\n"
	if err := svc.Connector().Subscribe(strings.NewReader(line)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if len(listener.adds) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(listener.adds))
	}
	if listener.adds[0].State != model.Done {
		t.Fatalf("final state = %v, want Done", listener.adds[0].State)
	}
	if _, err := svc.GetData("INQ1"); err == nil {
		t.Fatalf("expected a DONE inquiry to be evicted from storage")
	}
}

func TestQuotedInquiryTransitionsToDone(t *testing.T) {
	svc := New()
	listener := &recordingListener{}
	svc.AddListener(listener)

	line := "INQ1,91282CAV3,SELL,500000,99-160,QUOTED\n"
	if err := svc.Connector().Subscribe(strings.NewReader(line)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if len(listener.adds) != 1 || listener.adds[0].State != model.Done {
		t.Fatalf("expected a single Done notification from a QUOTED inquiry, got %+v", listener.adds)
	}
}

func TestRejectInquiryKeepsRejectedState(t *testing.T) {
	svc := New()

	if err := svc.OnMessage(model.Inquiry[model.Bond]{InquiryID: "INQ2", Side: model.Buy, Quantity: 1, State: model.Received}); err != nil {
		t.Fatalf("OnMessage: %v", err)
	}
	// OnMessage above resolved straight to Done and evicted; seed a
	// standalone Rejected record directly as RejectInquiry would.
	if err := svc.OnMessage(model.Inquiry[model.Bond]{InquiryID: "INQ3", Side: model.Sell, Quantity: 1, State: model.Rejected}); err != nil {
		t.Fatalf("OnMessage: %v", err)
	}
	stored, err := svc.GetData("INQ3")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if stored.State != model.Rejected {
		t.Fatalf("state = %v, want Rejected", stored.State)
	}
}
