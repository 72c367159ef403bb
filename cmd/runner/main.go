package main

import (
	"context"
	"os"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	extensionsv1alpha1 "github.com/frontend-forge/frontend-forge/api/extensions/v1alpha1"
	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/internal/buildservice"
	"github.com/frontend-forge/frontend-forge/internal/runner"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(frontendforgev1alpha1.AddToScheme(scheme))
	utilruntime.Must(extensionsv1alpha1.AddToScheme(scheme))
}

// main runs exactly one build-and-publish pass for the FrontendIntegration
// named by the Job's environment, then exits. It is the entrypoint image for
// the Job internal/buildjob.BuildJob constructs: one invocation per build
// attempt, not a long-running process.
func main() {
	opts := zap.Options{Development: false}
	log := zap.New(zap.UseFlagOptions(&opts))
	ctrl.SetLogger(log)

	cfg, err := runner.LoadConfig()
	if err != nil {
		log.Error(err, "invalid runner configuration")
		os.Exit(1)
	}

	k8sClient, err := client.New(ctrl.GetConfigOrDie(), client.Options{Scheme: scheme})
	if err != nil {
		log.Error(err, "unable to create kubernetes client")
		os.Exit(1)
	}

	buildClient := buildservice.NewClient(cfg.BuildServiceBaseURL, cfg.BuildServiceTimeout)
	r := runner.New(k8sClient, buildClient, log.WithName("runner"))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BuildServiceTimeout+cfg.StaleCheckGracePeriod+time.Minute)
	defer cancel()

	if err := r.Run(ctx, cfg); err != nil {
		log.Error(err, "build run failed", "fi", cfg.FIName, "specHash", cfg.SpecHash)
		os.Exit(1)
	}
}
