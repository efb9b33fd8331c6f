package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/datawolf04/physlab/internal/analysis"
	"github.com/datawolf04/physlab/internal/config"
	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/heat1d"
	"github.com/datawolf04/physlab/internal/hotbox"
	"github.com/datawolf04/physlab/internal/integrators"
	"github.com/datawolf04/physlab/internal/metrics"
	"github.com/datawolf04/physlab/internal/physics"
	"github.com/datawolf04/physlab/internal/plot"
	"github.com/datawolf04/physlab/internal/storage"
	"github.com/datawolf04/physlab/internal/viz"
	"github.com/datawolf04/physlab/internal/weather"
)

var log = logrus.New()

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	integrator string
	dt         float64
	duration   float64
	tolerance  float64
	samples    int

	spacing  float64
	solar    float64
	airTemp  float64
	initTemp float64
	layer    int
	pngOut   string

	points  int
	biot    float64
	maxTime float64

	speed    float64
	angle    float64
	height   float64
	mass     float64
	dragCoef float64

	puckMass    float64
	stickMass   float64
	stickLength float64
	puckSpeed   float64
	impactParam float64
	restitution float64

	stationID string
	apiKey    string
	dateStr   string

	jsonOut string

	sweepLow  float64
	sweepHigh float64
	sweepN    int

	column int
)

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "physlab",
		Short: "physics experiments: heat diffusion, projectiles, collisions",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the 3D box heating simulation",
		RunE:  runHotbox,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator")
	runCmd.Flags().Float64Var(&duration, "time", 36000, "simulated duration (s)")
	runCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")
	runCmd.Flags().IntVar(&samples, "samples", 120, "number of output samples")
	runCmd.Flags().Float64Var(&spacing, "spacing", 0, "grid spacing override (m)")
	runCmd.Flags().Float64Var(&solar, "solar", 0, "solar intensity override (W/m^2)")
	runCmd.Flags().Float64Var(&airTemp, "air-temp", 0, "air temperature override (C)")
	runCmd.Flags().Float64Var(&initTemp, "init-temp", 0, "initial box temperature override (C)")
	runCmd.Flags().StringVar(&pngOut, "png", "", "also write a temperature-history PNG")

	heat1dCmd := &cobra.Command{
		Use:   "heat1d",
		Short: "implicit Robin-boundary cooling of a unit rod",
		RunE:  runHeat1D,
	}
	heat1dCmd.Flags().IntVar(&points, "points", 51, "spatial points")
	heat1dCmd.Flags().Float64Var(&biot, "biot", 0.5, "Robin coupling coefficient")
	heat1dCmd.Flags().Float64Var(&maxTime, "time", 1.0, "simulated duration")
	heat1dCmd.Flags().Float64Var(&dt, "dt", 0.002, "time step")
	heat1dCmd.Flags().Float64Var(&initTemp, "init-temp", 10, "initial rod temperature")
	heat1dCmd.Flags().StringVar(&pngOut, "png", "", "also write a profile PNG")

	dirichletCmd := &cobra.Command{
		Use:   "dirichlet",
		Short: "exact series solution for fixed-end rod cooling",
		RunE:  runDirichlet,
	}
	dirichletCmd.Flags().Float64Var(&initTemp, "init-temp", 10, "initial rod temperature")
	dirichletCmd.Flags().IntVar(&points, "points", 41, "profile sample points")

	projectileCmd := &cobra.Command{
		Use:   "projectile",
		Short: "compare vacuum and quadratic-drag projectile flights",
		RunE:  runProjectile,
	}
	projectileCmd.Flags().Float64Var(&speed, "speed", 20, "launch speed (m/s)")
	projectileCmd.Flags().Float64Var(&angle, "angle", 45, "launch angle (deg)")
	projectileCmd.Flags().Float64Var(&height, "height", 30, "launch height (m)")
	projectileCmd.Flags().Float64Var(&mass, "mass", 1, "projectile mass (kg)")
	projectileCmd.Flags().Float64Var(&dragCoef, "drag", 0.02, "drag coefficient (kg/m)")
	projectileCmd.Flags().StringVar(&pngOut, "png", "", "also write a trajectory PNG")

	collisionCmd := &cobra.Command{
		Use:   "collision",
		Short: "puck-stick impact with translation and spin",
		RunE:  runCollision,
	}
	collisionCmd.Flags().Float64Var(&puckMass, "puck-mass", 1, "puck mass (kg)")
	collisionCmd.Flags().Float64Var(&stickMass, "stick-mass", 2, "stick mass (kg)")
	collisionCmd.Flags().Float64Var(&stickLength, "stick-length", 6, "stick length (m)")
	collisionCmd.Flags().Float64Var(&puckSpeed, "puck-speed", 2, "incoming puck speed (m/s)")
	collisionCmd.Flags().Float64Var(&impactParam, "impact", 2, "impact parameter (m)")
	collisionCmd.Flags().Float64Var(&restitution, "cor", 0.5, "coefficient of restitution")

	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "fetch a day of station history and summarize it",
		RunE:  runWeather,
	}
	weatherCmd.Flags().StringVar(&stationID, "station", "", "PWS station id")
	weatherCmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("WU_API_KEY"), "API key (defaults to WU_API_KEY)")
	weatherCmd.Flags().StringVar(&dateStr, "date", time.Now().AddDate(0, 0, -1).Format("2006-01-02"), "date (YYYY-MM-DD)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the box heat up in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Float64Var(&duration, "time", 36000, "simulated duration (s)")
	liveCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum of one series column",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&column, "column", 0, "series column index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored run's series to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as JSON (stdout by default)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "write to a file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets [experiment]",
		Short: "list available presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for experiment: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the box model across a range of solar intensities",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepLow, "low", 200, "lowest solar intensity (W/m^2)")
	sweepCmd.Flags().Float64Var(&sweepHigh, "high", 1000, "highest solar intensity (W/m^2)")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of sweep points")
	sweepCmd.Flags().Float64Var(&duration, "time", 36000, "simulated duration per run (s)")
	sweepCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")

	rootCmd.AddCommand(runCmd, heat1dCmd, dirichletCmd, projectileCmd, collisionCmd,
		weatherCmd, liveCmd, listCmd, plotCmd, spectrumCmd, exportCSVCmd, exportJSONCmd,
		presetsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadHotboxConfig resolves preset, config file, and flag overrides in
// that order.
func loadHotboxConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset("hotbox", preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("hotbox"))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.Duration = duration
	}
	if cmd.Flags().Changed("tol") {
		cfg.Sim.Tolerance = tolerance
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Hotbox.Spacing = spacing
	}
	if cmd.Flags().Changed("solar") {
		cfg.Hotbox.SolarIntensity = solar
	}
	if cmd.Flags().Changed("air-temp") {
		cfg.Hotbox.AirTemp = airTemp
	}
	if cmd.Flags().Changed("init-temp") {
		cfg.Hotbox.InitialTemp = initTemp
	}
	return cfg, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i+1)/float64(n)
	}
	return out
}

func meanSeries(result *dynamo.Result) []float64 {
	out := make([]float64, len(result.States))
	for i, s := range result.States {
		out[i] = stat.Mean(s, nil)
	}
	return out
}

func runHotbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadHotboxConfig(cmd)
	if err != nil {
		return err
	}

	box, err := hotbox.New(cfg.HotboxParams())
	if err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	simCfg := cfg.SimSettings()
	simCfg.Dt = box.StableDt()
	simCfg.OutputTimes = linspace(0, simCfg.Duration, samples)

	log.WithFields(logrus.Fields{
		"cells":       box.Grid.Cells(),
		"spacing":     cfg.Hotbox.Spacing,
		"integrator":  cfg.Integrator,
		"duration":    simCfg.Duration,
		"equilibrium": box.EquilibriumTemp(),
	}).Info("starting box simulation")

	sim := dynamo.New(box, integ)
	sim.AddMetric(metrics.NewVolumeMean())
	sim.AddMetric(metrics.NewPeak())
	sim.AddMetric(metrics.NewBounds(cfg.Hotbox.AirTemp-5, box.EquilibriumTemp()+5))

	start := time.Now()
	result, err := sim.Run(context.Background(), box.InitialState(cfg.Hotbox.InitialTemp), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save("hotbox", cfg.Integrator, simCfg.Dt, simCfg.Duration, result)
	if err != nil {
		return err
	}
	if err := st.SaveField(runID, "final_field", result.States[len(result.States)-1]); err != nil {
		return err
	}

	fmt.Printf("completed in %v (%d steps)\n", elapsed, result.StepsTaken)
	fmt.Printf("run id: %s\n\n", runID)

	means := meanSeries(result)
	graph := asciigraph.Plot(means,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("volume-mean temperature (C)"))
	fmt.Println(graph)

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("  equilibrium: %.6f\n", box.EquilibriumTemp())

	final := result.States[len(result.States)-1]
	hottest := 0
	for c, v := range final {
		if v > final[hottest] {
			hottest = c
		}
	}
	hi, hj, hk := box.Grid.Coords(hottest)
	fmt.Printf("  hottest cell: (%d,%d,%d) = (%.2f, %.2f, %.2f) m at %.4f C\n",
		hi, hj, hk,
		float64(hi)*box.Grid.Dx, float64(hj)*box.Grid.Dx, float64(hk)*box.Grid.Dx,
		final[hottest])

	if fit, err := analysis.FitApproach(result.Times, means, box.EquilibriumTemp()); err == nil {
		fmt.Printf("  time constant: %.1f s (R2=%.4f)\n", fit.TimeConstant, fit.R2)
	}

	if pngOut != "" {
		series := []plot.Series{{Name: "mean", Times: result.Times, Values: means}}
		if err := plot.SaveSeries(pngOut, "box heating", "T (C)", series); err != nil {
			return err
		}
		log.WithField("path", pngOut).Info("wrote temperature history plot")
	}
	return nil
}

func runHeat1D(cmd *cobra.Command, args []string) error {
	sol, err := heat1d.SolveRobin(heat1d.RobinParams{
		InitialTemp: initTemp,
		Points:      points,
		MaxTime:     maxTime,
		Dt:          dt,
		Biot:        biot,
	})
	if err != nil {
		return err
	}

	mid := sol.MidpointHistory()
	graph := asciigraph.Plot(mid,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("rod midpoint temperature"))
	fmt.Println(graph)

	final := sol.Profile(len(sol.Times) - 1)
	fmt.Printf("\nfinal midpoint: %.4f (started at %.4f)\n", mid[len(mid)-1], initTemp)
	fmt.Printf("final end temperature: %.4f\n", final[0])

	if pngOut != "" {
		paths := []plot.Path{{Name: fmt.Sprintf("t=%.2f", sol.Times[len(sol.Times)-1]), X: sol.X, Y: final}}
		if err := plot.SavePaths(pngOut, "rod temperature profile", "x", "T", paths); err != nil {
			return err
		}
	}
	return nil
}

func runDirichlet(cmd *cobra.Command, args []string) error {
	xs := make([]float64, points)
	for i := range xs {
		xs[i] = float64(i) / float64(points-1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMIDPOINT\tQUARTER")
	for _, t := range []float64{0, 0.01, 0.05, 0.1, 0.25, 0.5} {
		fmt.Fprintf(w, "%.2f\t%.6f\t%.6f\n",
			t,
			heat1d.DirichletExact(t, 0.5, initTemp),
			heat1d.DirichletExact(t, 0.25, initTemp))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	profile := heat1d.DirichletProfile(0.02, xs, initTemp)
	graph := asciigraph.Plot(profile,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("profile at t=0.02"))
	fmt.Println(graph)
	return nil
}

func runProjectile(cmd *cobra.Command, args []string) error {
	ideal, err := physics.NewIdealProjectile(speed, angle, height)
	if err != nil {
		return err
	}

	traj, err := physics.SimulateDrag(physics.DragParams{
		Speed:    speed,
		AngleDeg: angle,
		Height:   height,
		Mass:     mass,
		DragCoef: dragCoef,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tTIME OF FLIGHT\tRANGE")
	fmt.Fprintf(w, "vacuum\t%.3f s\t%.3f m\n", ideal.TimeOfFlight(), ideal.Range())
	fmt.Fprintf(w, "drag\t%.3f s\t%.3f m\n", traj.TimeOfFlight, traj.Range)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	graph := asciigraph.Plot(traj.Y,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("height over flight (with drag)"))
	fmt.Println(graph)

	if pngOut != "" {
		n := 200
		ix := make([]float64, n+1)
		iy := make([]float64, n+1)
		for i := 0; i <= n; i++ {
			t := ideal.TimeOfFlight() * float64(i) / float64(n)
			ix[i], iy[i] = ideal.Position(t)
		}
		paths := []plot.Path{
			{Name: "vacuum", X: ix, Y: iy},
			{Name: "drag", X: traj.X, Y: traj.Y},
		}
		if err := plot.SavePaths(pngOut, "projectile trajectories", "x (m)", "y (m)", paths); err != nil {
			return err
		}
	}
	return nil
}

func runCollision(cmd *cobra.Command, args []string) error {
	p := physics.CollisionParams{
		PuckMass:    puckMass,
		StickMass:   stickMass,
		StickLength: stickLength,
		PuckSpeed:   puckSpeed,
		ImpactParam: impactParam,
		Restitution: restitution,
	}
	out, err := physics.Solve(p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tBEFORE\tAFTER")
	fmt.Fprintf(w, "puck velocity\t%.4f m/s\t%.4f m/s\n", p.PuckSpeed, out.PuckVel)
	fmt.Fprintf(w, "stick velocity\t0\t%.4f m/s\n", out.StickVel)
	fmt.Fprintf(w, "stick spin\t0\t%.4f rad/s\n", out.StickOmega)
	keBefore := 0.5 * p.PuckMass * p.PuckSpeed * p.PuckSpeed
	keAfter := 0.5*p.PuckMass*out.PuckVel*out.PuckVel +
		0.5*p.StickMass*out.StickVel*out.StickVel +
		0.5*p.MomentOfInertia()*out.StickOmega*out.StickOmega
	fmt.Fprintf(w, "kinetic energy\t%.4f J\t%.4f J\n", keBefore, keAfter)
	return w.Flush()
}

func runWeather(cmd *cobra.Command, args []string) error {
	if stationID == "" {
		return fmt.Errorf("--station is required")
	}
	if apiKey == "" {
		return fmt.Errorf("API key missing: pass --api-key or set WU_API_KEY")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", dateStr, err)
	}

	client := weather.NewClient(stationID, apiKey, weather.WithLogger(log))
	obs, err := client.DailyHistory(context.Background(), date)
	if err != nil {
		return err
	}
	if len(obs) == 0 {
		fmt.Println("no observations for that day")
		return nil
	}

	s := weather.Summarize(obs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "station %s, %s (%d intervals)\n", stationID, dateStr, s.Intervals)
	fmt.Fprintln(w, "QUANTITY\tMEAN\tMIN\tMAX")
	fmt.Fprintf(w, "temperature (C)\t%.1f\t%.1f\t%.1f\n", s.Temp.Mean, s.Temp.Min, s.Temp.Max)
	fmt.Fprintf(w, "solar (W/m^2)\t%.0f\t%.0f\t%.0f\n", s.Solar.Mean, s.Solar.Min, s.Solar.Max)
	fmt.Fprintf(w, "humidity (%%)\t%.0f\t%.0f\t%.0f\n", s.Humidity.Mean, s.Humidity.Min, s.Humidity.Max)
	if err := w.Flush(); err != nil {
		return err
	}

	solarSeries := make([]float64, len(obs))
	for i, o := range obs {
		solarSeries[i] = o.SolarRadiationHigh
	}
	fmt.Println()
	graph := asciigraph.Plot(solarSeries,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("solar radiation over the day"))
	fmt.Println(graph)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadHotboxConfig(cmd)
	if err != nil {
		return err
	}
	box, err := hotbox.New(cfg.HotboxParams())
	if err != nil {
		return err
	}
	m := viz.NewLiveModel(box, box.InitialState(cfg.Hotbox.InitialTemp), cfg.Sim.Duration, cfg.Sim.Tolerance)
	return viz.RunLive(m)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPERIMENT\tTIME\tDURATION\tSTEPS\tINTEG\tDONE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%s\t%t\n",
			run.ID,
			run.Experiment,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Steps,
			run.Integrator,
			run.Completed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, _, rows, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nexperiment: %s\nsamples: %d\n\n", meta.ID, meta.Experiment, len(rows))

	maxPlots := 4
	cols := len(rows[0])
	if cols > maxPlots {
		cols = maxPlots
	}
	for c := 0; c < cols; c++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if c < len(rows[i]) {
				data[i] = rows[i][c]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(header[c+1]+" vs time"))
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	header, times, rows, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(rows) < 4 || column >= len(rows[0]) {
		return fmt.Errorf("not enough data for column %d", column)
	}

	data := make([]float64, len(rows))
	for i := range rows {
		data[i] = rows[i][column]
	}
	sampleDt := (times[len(times)-1] - times[0]) / float64(len(times)-1)

	_, power := analysis.PowerSpectrum(data, sampleDt)
	quarter := power[:len(power)/4+1]
	graph := asciigraph.Plot(quarter,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum: "+header[column+1]))
	fmt.Println(graph)

	freq := analysis.DominantFrequency(data, sampleDt)
	fmt.Printf("\ndominant frequency: %.5f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	header, times, rows, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for i := range rows {
		record := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range rows[i] {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, times, rows, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	result := &dynamo.Result{
		Times:      times,
		States:     make([]dynamo.State, len(rows)),
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
		Completed:  meta.Completed,
	}
	for i, r := range rows {
		result.States[i] = r
	}
	if jsonOut != "" {
		return storage.ExportJSON(jsonOut, meta.Experiment, meta.Integrator, meta.Dt, meta.Duration, result)
	}
	return storage.ExportJSONStdout(meta.Experiment, meta.Integrator, meta.Dt, meta.Duration, result)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepN < 2 {
		return fmt.Errorf("need at least 2 sweep points")
	}

	base := config.DefaultConfig()
	base.Sim.Duration = duration
	base.Sim.Tolerance = tolerance

	intensities := make([]float64, sweepN)
	boxes := make([]*hotbox.Box, sweepN)
	for i := range intensities {
		intensities[i] = sweepLow + (sweepHigh-sweepLow)*float64(i)/float64(sweepN-1)
		p := base.HotboxParams()
		p.SolarIntensity = intensities[i]
		box, err := hotbox.New(p)
		if err != nil {
			return err
		}
		boxes[i] = box
	}

	log.WithFields(logrus.Fields{
		"runs": sweepN,
		"low":  sweepLow,
		"high": sweepHigh,
	}).Info("starting solar intensity sweep")

	ens := dynamo.NewEnsemble(sweepN, func(i int) (*dynamo.Simulator, dynamo.State, dynamo.Config) {
		box := boxes[i]
		simCfg := base.SimSettings()
		simCfg.Dt = box.StableDt()
		simCfg.OutputTimes = linspace(0, simCfg.Duration, 20)
		sim := dynamo.New(box, integrators.NewRK45())
		sim.AddMetric(metrics.NewVolumeMean())
		return sim, box.InitialState(base.Hotbox.InitialTemp), simCfg
	})

	start := time.Now()
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("sweep finished")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLAR (W/m^2)\tFINAL MEAN (C)\tEQUILIBRIUM (C)\tSTEPS")
	for i, res := range results {
		final := stat.Mean(res.States[len(res.States)-1], nil)
		fmt.Fprintf(w, "%.0f\t%.3f\t%.3f\t%d\n",
			intensities[i], final, boxes[i].EquilibriumTemp(), res.StepsTaken)
	}
	return w.Flush()
}
