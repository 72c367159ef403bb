package main

import (
	"context"
	"flag"
	"os"
	"time"

	monitoringv1 "github.com/prometheus-operator/prometheus-operator/pkg/apis/monitoring/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	extensionsv1alpha1 "github.com/frontend-forge/frontend-forge/api/extensions/v1alpha1"
	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/controllers"
	"github.com/frontend-forge/frontend-forge/internal/buildjob"
	"github.com/frontend-forge/frontend-forge/internal/events"
	"github.com/frontend-forge/frontend-forge/internal/metrics"
	"github.com/frontend-forge/frontend-forge/internal/observability"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(frontendforgev1alpha1.AddToScheme(scheme))
	utilruntime.Must(extensionsv1alpha1.AddToScheme(scheme))
	// Registered so a future PodMonitor (scraping this controller's own
	// /metrics endpoint) can be managed through the same client without a
	// second scheme setup; no controller reconciles PodMonitor today.
	utilruntime.Must(monitoringv1.AddToScheme(scheme))
}

func main() {
	var (
		metricsAddr          string
		probeAddr            string
		enableLeaderElection bool

		maxConcurrentReconciles int

		buildNamespace        string
		runnerImage           string
		runnerServiceAccount  string
		buildServiceBaseURL   string
		buildServiceTimeout   time.Duration
		staleCheckGrace       time.Duration
		jobTTLSecondsFinished int

		cloudEventsBrokerURL string

		enableTracing       bool
		otlpEndpoint        string
		tracingSamplingRate float64
	)

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flag.IntVar(&maxConcurrentReconciles, "max-concurrent-reconciles", 10, "Maximum concurrent reconciles.")

	flag.StringVar(&buildNamespace, "build-namespace", "frontend-forge-system", "Namespace build Jobs and manifest Secrets are created in.")
	flag.StringVar(&runnerImage, "runner-image", "", "Image for the runner container launched by each build Job.")
	flag.StringVar(&runnerServiceAccount, "runner-service-account", "frontend-forge-runner", "ServiceAccount the runner Pod runs as.")
	flag.StringVar(&buildServiceBaseURL, "build-service-base-url", "", "Base URL of the external build service the runner submits manifests to.")
	flag.DurationVar(&buildServiceTimeout, "build-service-timeout", 10*time.Minute, "HTTP timeout for build-service requests.")
	flag.DurationVar(&staleCheckGrace, "stale-check-grace-period", 30*time.Second, "How long a runner waits for status.observedSpecHash to catch up before giving up.")
	flag.IntVar(&jobTTLSecondsFinished, "job-ttl-seconds-after-finished", 3600, "TTLSecondsAfterFinished set on every build Job (<=0 disables TTL cleanup).")

	flag.StringVar(&cloudEventsBrokerURL, "cloudevents-broker-url", os.Getenv("CLOUDEVENTS_BROKER_URL"), "Optional broker URL lifecycle CloudEvents are POSTed to; empty disables emission.")

	flag.BoolVar(&enableTracing, "enable-tracing", false, "Enable OpenTelemetry distributed tracing.")
	flag.StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP collector endpoint.")
	flag.Float64Var(&tracingSamplingRate, "tracing-sampling-rate", 1.0, "Trace sampling rate (0.0-1.0).")

	opts := zap.Options{Development: false}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	var otelProvider *observability.Provider
	if enableTracing {
		cfg := observability.DefaultConfig()
		if otlpEndpoint != "" {
			cfg.OTLPEndpoint = otlpEndpoint
		}
		if tracingSamplingRate >= 0 && tracingSamplingRate <= 1.0 {
			cfg.TracingSamplingRate = tracingSamplingRate
		}
		cfg.TracingEnabled = true
		cfg.MetricsEnabled = false

		var err error
		otelProvider, err = observability.NewProvider(cfg)
		if err != nil {
			setupLog.Error(err, "failed to initialize tracing, continuing without it")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := otelProvider.Shutdown(shutdownCtx); err != nil {
					setupLog.Error(err, "error shutting down tracing")
				}
			}()
		}
	}

	metrics.Register()

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress: metricsAddr,
		},
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "frontendintegration.frontend-forge.io",
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	buildJobConfig := buildjob.Config{
		RunnerImage:           runnerImage,
		RunnerServiceAccount:  runnerServiceAccount,
		BuildNamespace:        buildNamespace,
		BuildServiceBaseURL:   buildServiceBaseURL,
		BuildServiceTimeout:   buildServiceTimeout,
		StaleCheckGracePeriod: staleCheckGrace,
	}
	if jobTTLSecondsFinished > 0 {
		ttl := int32(jobTTLSecondsFinished)
		buildJobConfig.JobTTLSecondsAfterFinished = &ttl
	}

	reconciler := &controllers.FrontendIntegrationReconciler{
		Client:         mgr.GetClient(),
		Scheme:         mgr.GetScheme(),
		Log:            ctrl.Log.WithName("controllers").WithName("FrontendIntegration"),
		BuildJobConfig: buildJobConfig,
		Metrics:        metrics.NewReconcilerMetrics(),
		OTELProvider:   otelProvider,
		Events: events.NewManager(events.Config{
			BrokerURL: cloudEventsBrokerURL,
			Enabled:   cloudEventsBrokerURL != "",
		}),
	}

	rateLimiter := workqueue.NewTypedMaxOfRateLimiter(
		workqueue.NewTypedItemExponentialFailureRateLimiter[ctrl.Request](5*time.Millisecond, 1000*time.Second),
		workqueue.NewTypedItemFastSlowRateLimiter[ctrl.Request](5*time.Millisecond, 30*time.Second, 100),
	)

	if err := reconciler.SetupWithManager(mgr, controllers.ReconcilerOptions{
		MaxConcurrentReconciles: maxConcurrentReconciles,
		RateLimiter:             rateLimiter,
	}); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "FrontendIntegration")
		os.Exit(1)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager", "buildNamespace", buildNamespace, "maxConcurrentReconciles", maxConcurrentReconciles)
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
