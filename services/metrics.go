package services

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(oauthLoginCounter)
}

var oauthLoginCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name:      "logins_total",
		Subsystem: "oauth",
		Help:      "Total number of OAuth login attempts by provider and result",
	},
	[]string{"provider", "result"},
)
