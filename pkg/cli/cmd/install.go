package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/ffcarrasco/astrogaia-setup/pkg/apis/setup/v1alpha1"
	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/setup"
	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/ui/instructions"
	"github.com/ffcarrasco/astrogaia-setup/pkg/di"
	configmanager "github.com/ffcarrasco/astrogaia-setup/pkg/io/config-manager"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/cache"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/detector"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/fetcher"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/installer/pip"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/provisioner/venv"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/smoke"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/notify"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Clone astrogaia and set up its virtual environment",
		Long: "Install checks the Python interpreter and Git, clones the astrogaia " +
			"repository, creates a virtual environment, installs the dependency " +
			"manifest, smoke tests the result, and prints usage instructions.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runtimeContainer.Invoke(func(injector di.Injector) error {
				return handleInstallRunE(cmd, injector)
			})
		},
		SilenceUsage: true,
		// Unrecognized flags are tolerated so wrapper scripts with stale
		// flags keep working.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	}

	cmd.Flags().Bool("ignore-check-python", false, "Skip the Python interpreter version check")
	cmd.Flags().String("env-name", v1alpha1.DefaultEnvName, "Name of the virtual environment directory")
	cmd.Flags().String("repo", v1alpha1.DefaultRepoURL, "Git remote to clone the application from")
	cmd.Flags().String("branch", "", "Branch to check out on clone (default branch when empty)")
	cmd.Flags().String("clone-dir", v1alpha1.DefaultRepoDir, "Directory the clone is placed in")
	cmd.Flags().String("python", v1alpha1.DefaultPythonBinary, "Python interpreter to probe and use")

	return cmd
}

// pipeline carries the resolved dependencies of one install run.
type pipeline struct {
	writer    io.Writer
	tmr       timer.Timer
	cmdRunner runner.CommandRunner
	detect    *detector.ToolDetector
	config    *v1alpha1.Setup

	// pythonVersion is captured by the interpreter check and reused by the
	// pwntools stage. Nil when the check was skipped or failed.
	pythonVersion *semver.Version
}

func handleInstallRunE(cmd *cobra.Command, injector di.Injector) error {
	tmr, err := di.ResolveTimer(injector)
	if err != nil {
		return fmt.Errorf("resolve timer: %w", err)
	}

	cmdRunner, err := di.ResolveCommandRunner(injector)
	if err != nil {
		return fmt.Errorf("resolve command runner: %w", err)
	}

	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	tmr.Start()

	outputTimer := setup.MaybeTimer(cmd, tmr)

	cfgManager := configmanager.NewConfigManager(out)

	err = cfgManager.BindFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	notify.Titlef(out, "⚙️", "Loading configuration")

	cfg, err := cfgManager.LoadConfig(outputTimer)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	run := &pipeline{
		writer:    out,
		tmr:       outputTimer,
		cmdRunner: cmdRunner,
		detect:    detector.NewToolDetector(cmdRunner),
		config:    cfg,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stages := []func(context.Context) error{
		run.checkPython,
		run.checkGit,
		run.cloneRepository,
		run.createEnvironment,
		run.installDependencies,
		run.smokeTest,
		run.suppressPwntoolsUpdates,
		run.printInstructions,
	}

	for _, stage := range stages {
		err = stage(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkPython verifies the interpreter exists and meets the minimum version.
// A failed check is reported but does not stop the install; pip surfaces any
// real incompatibility later with a clearer message.
func (p *pipeline) checkPython(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "🐍",
		Title:         "Checking Python interpreter",
		FailurePrefix: "python check failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		if p.config.Python.IgnoreCheck {
			notify.Warningf(p.writer, "interpreter version check skipped on request")

			return nil
		}

		version, err := p.detect.PythonVersion(ctx, p.config.Python.Binary)
		if err != nil {
			return err
		}

		err = detector.CheckMinimum(version, p.config.Python.MinVersion)
		if err != nil {
			return err
		}

		p.pythonVersion = version

		notify.SuccessWithTimerf(p.writer, p.tmr, "%s %s satisfies minimum version %s",
			p.config.Python.Binary, version, p.config.Python.MinVersion)

		return nil
	})
}

func (p *pipeline) checkGit(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "🛠️",
		Title:         "Checking Git",
		FailurePrefix: "git check failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(_ context.Context) error {
		path, err := p.detect.BinaryPath("git")
		if err != nil {
			return err
		}

		notify.SuccessWithTimerf(p.writer, p.tmr, "git found at %s", path)

		return nil
	})
}

// cloneRepository is the only fatal stage. Without a checkout nothing later
// in the pipeline can do useful work.
func (p *pipeline) cloneRepository(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "📥",
		Title:         "Cloning repository",
		Activity:      "Cloning " + p.config.Repo.URL,
		FailurePrefix: "clone failed",
		Fatal:         true,
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		gitFetcher := fetcher.NewGitFetcher(p.cmdRunner)

		err := gitFetcher.Clone(ctx, p.config.Repo.URL, p.config.Repo.Branch, p.config.Repo.Dir)
		if err != nil {
			return err
		}

		notify.SuccessWithTimerf(p.writer, p.tmr, "cloned into %s", p.config.Repo.Dir)

		return nil
	})
}

func (p *pipeline) createEnvironment(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "📦",
		Title:         "Creating virtual environment",
		FailurePrefix: "environment creation failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		provisioner := venv.NewProvisioner(p.cmdRunner, p.config.Python.Binary, p.writer)

		strategyName, err := provisioner.Provision(ctx, p.config.Env.Name)
		if err != nil {
			return err
		}

		notify.SuccessWithTimerf(p.writer, p.tmr, "created %s via %s", p.config.Env.Name, strategyName)

		return nil
	})
}

func (p *pipeline) installDependencies(ctx context.Context) error {
	manifest := filepath.Join(p.config.Repo.Dir, p.config.Repo.Manifest)

	stage := setup.Stage{
		Emoji:         "🧩",
		Title:         "Installing dependencies",
		Activity:      "Installing " + manifest,
		Success:       "dependencies installed",
		FailurePrefix: "dependency install failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		pipInstaller := pip.NewInstaller(p.cmdRunner, p.config.Env.Name, manifest)

		return pipInstaller.Install(ctx)
	})
}

func (p *pipeline) smokeTest(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "🧪",
		Title:         "Running smoke test",
		Success:       p.config.Repo.Entrypoint + " responds to -h",
		FailurePrefix: "smoke test failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		tester := smoke.NewTester(p.cmdRunner)

		_, err := tester.Run(ctx, p.config.Env.Name, p.config.Repo.Dir, p.config.Repo.Entrypoint)

		return err
	})
}

// suppressPwntoolsUpdates writes the pwntools cache sentinel so the tool's
// pwntools dependency stops nagging about updates on every run.
func (p *pipeline) suppressPwntoolsUpdates(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "🔕",
		Title:         "Silencing pwntools update checks",
		FailurePrefix: "pwntools cache write failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(ctx context.Context) error {
		version := p.pythonVersion
		if version == nil {
			probed, err := p.detect.PythonVersion(ctx, p.config.Python.Binary)
			if err != nil {
				return fmt.Errorf("probe interpreter version for cache path: %w", err)
			}

			version = probed
		}

		path, err := cache.SuppressPwntoolsUpdateCheck(version)
		if err != nil {
			return err
		}

		notify.SuccessWithTimerf(p.writer, p.tmr, "wrote %s", path)

		return nil
	})
}

func (p *pipeline) printInstructions(ctx context.Context) error {
	stage := setup.Stage{
		Emoji:         "📖",
		Title:         "Usage",
		FailurePrefix: "rendering instructions failed",
	}

	return setup.Run(ctx, p.writer, p.tmr, stage, func(_ context.Context) error {
		markdown := instructions.Build(
			p.config.Env.Name,
			p.config.Repo.Dir,
			p.config.Repo.Entrypoint,
		)

		return instructions.Render(p.writer, markdown)
	})
}
