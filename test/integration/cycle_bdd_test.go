//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/adloop/internal/daemon"
	"github.com/eliteGoblin/adloop/internal/domain"
	"github.com/eliteGoblin/adloop/internal/infra"
	"github.com/eliteGoblin/adloop/internal/policy"
	"github.com/eliteGoblin/adloop/internal/usecase"
	"github.com/eliteGoblin/adloop/test/fixtures"
)

const serial = "ZY22L7ZMHX"

// stack is the production wiring with the fake device behind the gateway.
type stack struct {
	game      domain.Game
	gw        *infra.ADBGateway
	device    *infra.ADBDevice
	inspector *infra.ForegroundInspectorImpl
	detector  *usecase.Detector
	driver    *usecase.Driver
	ladder    *usecase.Ladder
	runner    *usecase.CycleRunner
	sleeper   *fixtures.InstantSleeper
	rng       *rand.Rand
	logger    *zap.Logger
}

func newStack(game domain.Game, mode infra.ExecMode, opts ...infra.GatewayOption) *stack {
	s := &stack{
		game:    game,
		sleeper: &fixtures.InstantSleeper{},
		rng:     rand.New(rand.NewSource(7)),
		logger:  zap.NewNop(),
	}
	s.gw = infra.NewADBGateway("adb", serial, mode, s.logger, opts...)
	s.device = infra.NewADBDevice(s.gw)
	s.inspector = infra.NewForegroundInspector(infra.DefaultDumpSources(s.gw)...)
	s.detector = usecase.NewDetector(s.inspector, policy.NewClassifier(game.Package, policy.DefaultSignatures()))
	s.driver = usecase.NewDriver(usecase.DefaultDriverConfig(), game.Layout, s.device, s.rng, s.sleeper, s.logger)
	s.ladder = usecase.NewRecoveryLadder(usecase.DefaultLadderConfig(), game, s.device, s.driver, s.detector, s.rng, s.sleeper, s.logger)
	s.runner = usecase.NewCycleRunner(usecase.DefaultCycleConfig(), game, s.driver, s.detector, s.ladder, s.sleeper, s.logger)
	return s
}

// limitedRunner stops the watcher after a fixed number of cycles.
type limitedRunner struct {
	inner   daemon.CycleRunner
	limit   int
	cancel  context.CancelFunc
	results []bool
}

func (l *limitedRunner) RunCycle(ctx context.Context, state *domain.CycleState) bool {
	ok := l.inner.RunCycle(ctx, state)
	l.results = append(l.results, ok)
	if len(l.results) >= l.limit {
		l.cancel()
	}
	return ok
}

var _ = Describe("Ad loop against a fake device", func() {
	var (
		game domain.Game
		fake *fixtures.FakeDevice
		s    *stack
		ctx  context.Context
	)

	load := func(ads ...fixtures.Ad) {
		fake = fixtures.NewFakeDevice(serial, game, ads...)
		s = newStack(game, infra.ExecModeLive, infra.WithRunner(fake.Run))
	}

	BeforeEach(func() {
		var err error
		game, err = policy.NewRegistry().Game(policy.DefaultGameID)
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("Foreground inspection", func() {
		BeforeEach(func() {
			load()
		})

		It("should report the package of the focused window", func() {
			fake.SetForeground(fixtures.ChromeCustomTab)
			Expect(s.inspector.Current(ctx)).To(Equal("com.android.chrome"))
		})

		It("should skip the system UI", func() {
			fake.SetForeground(fixtures.RecentsComponent)
			Expect(s.inspector.Current(ctx)).To(BeEmpty())
		})

		It("should report nothing when dumps fail", func() {
			fake.ShowGame()
			fake.FailDumps(true)
			Expect(s.inspector.Current(ctx)).To(BeEmpty())
			Expect(s.detector.AdPlaying(ctx)).To(BeFalse())
		})
	})

	Describe("RunCycle", func() {
		var state *domain.CycleState

		BeforeEach(func() {
			state = domain.NewCycleState(domain.ButtonHome)
		})

		Context("when the ad closes with its X button", func() {
			BeforeEach(func() {
				load(fixtures.Ad{Kind: fixtures.CloseTapAd, Component: fixtures.AppLovinInterstitial})
				fake.ShowGame()
			})

			It("should clear it with a targeted tap and flip the trigger", func() {
				Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())

				Expect(fake.Triggers()).To(Equal([]string{"home"}))
				Expect(fake.Foreground()).To(Equal(fake.GameComponent()))
				Expect(fake.Count("force-stop")).To(BeZero())
				Expect(fake.Count("keyevent")).To(BeZero())
				Expect(state.Cycle).To(Equal(1))
				Expect(state.Mode).To(Equal(domain.ButtonRetry))
				Expect(state.NeedsLevelTap).To(BeTrue())
			})
		})

		Context("when the ad only answers to BACK", func() {
			BeforeEach(func() {
				load(fixtures.Ad{Kind: fixtures.BackKeyAd, Component: fixtures.AppLovinInterstitial})
				fake.ShowGame()
			})

			It("should escalate past taps and relaunches to the back burst", func() {
				Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())

				Expect(fake.Count("keyevent " + domain.KeyBack)).To(BeNumerically(">=", 1))
				Expect(fake.Count("LAUNCHER")).To(Equal(usecase.DefaultLadderConfig().MinimizeRetries))
				Expect(fake.Count("force-stop")).To(BeZero())
				Expect(fake.Foreground()).To(Equal(fake.GameComponent()))
			})
		})

		Context("when the ad survives everything but a force-stop", func() {
			BeforeEach(func() {
				load(fixtures.Ad{Kind: fixtures.StickyAd, Component: fixtures.AppLovinInterstitial})
				fake.ShowGame()
			})

			It("should finish with the nuclear restart", func() {
				Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())

				Expect(fake.Count("am force-stop " + game.Package)).To(Equal(1))
				Expect(fake.Foreground()).To(Equal(fake.GameComponent()))
				Expect(state.StickyCount).To(BeZero())
			})
		})

		Context("when a browser tab survives every restart", func() {
			BeforeEach(func() {
				load(fixtures.Ad{Kind: fixtures.HostedAd, Component: fixtures.ChromeCustomTab})
				fake.ShowGame()
			})

			It("should fail until the tab has stuck twice, then kill the browser", func() {
				Expect(s.runner.RunCycle(ctx, state)).To(BeFalse())
				Expect(state.StickyCount).To(BeZero())
				Expect(state.Mode).To(Equal(domain.ButtonHome))

				Expect(s.runner.RunCycle(ctx, state)).To(BeFalse())
				Expect(state.StickyCount).To(Equal(1))
				Expect(state.Mode).To(Equal(domain.ButtonHome))
				Expect(state.Cycle).To(BeZero())
				Expect(fake.Count("am force-stop com.android.chrome")).To(BeZero())

				Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())

				Expect(fake.Count("am force-stop com.android.chrome")).To(Equal(1))
				// The nuclear restart ran on the two failed cycles only
				Expect(fake.Count("am force-stop " + game.Package)).To(Equal(2))
				Expect(fake.Foreground()).To(Equal(fake.GameComponent()))
				Expect(fake.Triggers()).To(Equal([]string{"home"}))
				Expect(state.Cycle).To(Equal(1))
				Expect(state.Mode).To(Equal(domain.ButtonRetry))
				Expect(state.StickyCount).To(BeZero())
				Expect(state.LastForeign).To(Equal("com.android.chrome"))
			})
		})

		Context("when the foreground cannot be read", func() {
			BeforeEach(func() {
				load(fixtures.Ad{Kind: fixtures.StickyAd, Component: fixtures.AppLovinInterstitial})
				fake.ShowGame()
				fake.FailDumps(true)
			})

			It("should treat the screen as clear", func() {
				Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())
				Expect(fake.Count("force-stop")).To(BeZero())
			})
		})
	})

	Describe("Watcher", func() {
		It("should start the game and alternate triggers across cycles", func() {
			load(
				fixtures.Ad{Kind: fixtures.CloseTapAd, Component: fixtures.AppLovinInterstitial},
				fixtures.Ad{Kind: fixtures.NoAd},
				fixtures.Ad{Kind: fixtures.BackKeyAd, Component: fixtures.AppLovinInterstitial},
				fixtures.Ad{Kind: fixtures.CloseTapAd, Component: fixtures.AppLovinInterstitial},
			)
			server := infra.NewADBServerManagerWithLister(s.gw, func() ([]string, error) { return nil, nil }, s.logger)

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			runner := &limitedRunner{inner: s.runner, limit: 4, cancel: cancel}

			w := daemon.NewWatcher(daemon.DefaultWatcherConfig(), game, s.device, s.driver, s.detector,
				runner, server, s.rng, s.sleeper, s.logger)

			Expect(w.Run(runCtx)).To(Succeed())

			cmds := fake.Commands()
			Expect(cmds[0]).To(Equal("start-server"))
			Expect(cmds[1]).To(Equal("shell am force-stop " + game.Package))
			Expect(cmds[2]).To(Equal(fmt.Sprintf("shell monkey -p %s -c android.intent.category.LAUNCHER 1", game.Package)))

			Expect(runner.results).To(Equal([]bool{true, true, true, true}))
			Expect(fake.Triggers()).To(Equal([]string{"home", "retry", "home", "retry"}))
			Expect(w.State().Cycle).To(Equal(4))
			Expect(w.Failures()).To(BeZero())
			Expect(s.sleeper.Total()).To(BeNumerically(">", 0))
		})
	})

	Describe("Dry run", func() {
		It("should print commands without running any", func() {
			var out bytes.Buffer
			called := false
			never := func(ctx context.Context, name string, args ...string) ([]byte, error) {
				called = true
				return nil, nil
			}
			s = newStack(game, infra.ExecModeSimulate, infra.WithRunner(never), infra.WithOutput(&out))
			state := domain.NewCycleState(domain.ButtonHome)

			Expect(s.runner.RunCycle(ctx, state)).To(BeTrue())

			Expect(called).To(BeFalse())
			Expect(out.String()).To(ContainSubstring("[dry-run] adb -s " + serial + " shell input tap "))
			Expect(out.String()).To(ContainSubstring("[dry-run] adb -s " + serial + " shell dumpsys window windows"))
		})
	})
})
