package bindable

import "testing"

func TestSet_NotifiesOnlyOnChange(t *testing.T) {
	b := New(1)
	var got []ValueChanged[int]
	b.OnChange(func(c ValueChanged[int]) { got = append(got, c) }, false)

	b.Set(1)
	b.Set(2)
	b.Set(2)
	b.Set(3)

	want := []ValueChanged[int]{{1, 2}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOnChange_RunOnceImmediately(t *testing.T) {
	b := New("a")
	var calls int
	b.OnChange(func(c ValueChanged[string]) {
		calls++
		if c.New != "a" {
			t.Errorf("immediate call got %q", c.New)
		}
	}, true)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	b := New(false)
	calls := 0
	sub := b.OnChange(func(ValueChanged[bool]) { calls++ }, false)
	b.Set(true)
	sub.Unsubscribe()
	b.Set(false)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	Subscription{}.Unsubscribe()
}

func TestDefault(t *testing.T) {
	b := New(5)
	b.Set(7)
	if b.IsDefault() {
		t.Error("IsDefault() after Set")
	}
	b.ResetToDefault()
	if b.Value() != 5 || !b.IsDefault() {
		t.Errorf("Value() = %d after reset, want 5", b.Value())
	}
}

func TestBindTo_TwoWay(t *testing.T) {
	source := New(10)
	source.Set(20)
	mirror := New(0)
	mirror.BindTo(source)

	if mirror.Value() != 20 || mirror.Default() != 10 {
		t.Fatalf("bound value/default = %d/%d, want 20/10", mirror.Value(), mirror.Default())
	}

	notified := 0
	source.OnChange(func(ValueChanged[int]) { notified++ }, false)

	mirror.Set(30)
	if source.Value() != 30 {
		t.Errorf("source = %d, want 30", source.Value())
	}
	source.Set(40)
	if mirror.Value() != 40 {
		t.Errorf("mirror = %d, want 40", mirror.Value())
	}
	if notified != 2 {
		t.Errorf("source notified %d times, want 2", notified)
	}

	mirror.UnbindFrom(source)
	source.Set(50)
	if mirror.Value() != 40 {
		t.Error("unbound mirror still follows source")
	}
}

func TestUnbindAll(t *testing.T) {
	a, b := New(0), New(0)
	a.BindTo(b)
	calls := 0
	a.OnChange(func(ValueChanged[int]) { calls++ }, false)

	a.UnbindAll()
	b.Set(1)
	a.Set(2)
	if a.Value() != 2 || b.Value() != 1 || calls != 0 {
		t.Errorf("after UnbindAll a=%d b=%d calls=%d", a.Value(), b.Value(), calls)
	}
}
