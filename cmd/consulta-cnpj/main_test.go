package main

import (
	"testing"
	"time"

	"github.com/consulta-cnpj/consulta-cnpj/internal/app"
	_ "github.com/consulta-cnpj/consulta-cnpj/testing"
)

func TestMainIsInertInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected test mode to be active")
	}

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("main did not return in test mode")
	}
}
