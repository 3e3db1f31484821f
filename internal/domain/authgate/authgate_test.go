package authgate

import (
	"testing"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name           string
		requireAuth    bool
		authenticated  bool
		route          model.Route
		wantAllowed    bool
		wantRedirectTo model.Route
	}{
		{"гость на входе", false, false, model.RouteLogin, true, ""},
		{"авторизованный на входе", false, true, model.RouteLogin, false, model.RouteDashboard},
		{"авторизованный на регистрации", false, true, model.RouteSignup, false, model.RouteDashboard},
		{"гость на дашборде", false, false, model.RouteDashboard, false, model.RouteLogin},
		{"гость на создании", false, false, model.RouteCreate, false, model.RouteLogin},
		{"гость на своих квизах", false, false, model.RouteMyQuizzes, false, model.RouteLogin},
		{"авторизованный на дашборде", false, true, model.RouteDashboard, true, ""},
		{"гость проходит квиз без требования входа", false, false, model.RouteAttempt, true, ""},
		{"гость проходит квиз при требовании входа", true, false, model.RouteAttempt, false, model.RouteLogin},
		{"авторизованный проходит квиз при требовании входа", true, true, model.RouteAttempt, true, ""},
		{"домашний экран доступен всем", false, false, model.RouteHome, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewGate(tc.requireAuth)
			got := gate.Decide(tc.authenticated, tc.route)
			if got.Allowed != tc.wantAllowed {
				t.Errorf("Allowed = %t, ожидалось %t", got.Allowed, tc.wantAllowed)
			}
			if got.RedirectTo != tc.wantRedirectTo {
				t.Errorf("RedirectTo = %q, ожидалось %q", got.RedirectTo, tc.wantRedirectTo)
			}
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	gate := NewGate(false)
	first := gate.Decide(false, model.RouteDashboard)
	second := gate.Decide(false, model.RouteDashboard)
	if first != second {
		t.Error("повторный вызов с теми же аргументами дал другой результат")
	}
}
