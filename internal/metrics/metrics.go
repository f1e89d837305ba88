package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "club_portal_logins_total",
		Help: "Login attempts by principal kind and result.",
	}, []string{"kind", "result"})

	CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "club_portal_checkins_total",
		Help: "Attendance check-in attempts by result.",
	}, []string{"result"})

	TestSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "club_portal_test_submissions_total",
		Help: "Test submissions by result.",
	}, []string{"result"})
)
