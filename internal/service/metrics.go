package service

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders committed",
	})
	paymentsInitiated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_initiated_total",
		Help: "Payment initiations by result",
	}, []string{"result"})
	filesSwept = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "files_swept_total",
		Help: "Unpurchased files processed by the retention sweep",
	}, []string{"result"})
)

func init() { prometheus.MustRegister(ordersCreated, paymentsInitiated, filesSwept) }
