// Package main provides the housefit CLI.
//
// housefit fits a line to house sizes and prices with gradient descent or
// BFGS and prints the optimizer's path step by step.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/csvio"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/session"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("housefit: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "train":
		err = runTrain(args)
	case "predict":
		err = runPredict(args)
	case "play":
		err = runPlay(args)
	case "compare":
		err = runCompare(args)
	case "version":
		fmt.Printf("housefit %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		log.Fatalf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("housefit - house price regression optimizer visualizer")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Fit the model and print the history")
	fmt.Println("  predict    Fit the model and predict a price")
	fmt.Println("  play       Step through the history on a timer")
	fmt.Println("  compare    Fit with both methods and compare final loss")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Run 'housefit <command> -h' for flags.")
}

// commonFlags are shared by every training command.
type commonFlags struct {
	data     string
	random   int
	seed     int64
	method   string
	lr       float64
	iters    int
	saveData string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	def := session.DefaultSettings()
	fs.StringVar(&c.data, "data", "", "CSV file with size,price rows (.zst, .s2, .lz4 compressed ok)")
	fs.IntVar(&c.random, "random", 0, "Number of random houses to add")
	fs.Int64Var(&c.seed, "seed", -1, "Random seed (-1 = time based)")
	fs.StringVar(&c.method, "method", def.Method.String(), "Optimization method: gd or bfgs")
	fs.Float64Var(&c.lr, "lr", def.LearningRate, "Learning rate")
	fs.IntVar(&c.iters, "iters", def.Iterations, "Number of iterations")
	fs.StringVar(&c.saveData, "save-data", "", "Write the dataset to this CSV file")
}

// session builds and fills a session from the flags.
func (c *commonFlags) session() (*session.Session, error) {
	method, err := optim.ParseMethod(c.method)
	if err != nil {
		return nil, err
	}

	cfg := session.DefaultConfig()
	cfg.Generator.Seed = c.seed
	cfg.Settings = session.Settings{Method: method, LearningRate: c.lr, Iterations: c.iters}
	s := session.New(cfg)

	if c.data != "" {
		samples, err := csvio.LoadSamples(c.data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", c.data, err)
		}
		if err := s.AddSamples(samples); err != nil {
			return nil, err
		}
		log.Printf("loaded %d houses from %s", len(samples), c.data)
	}
	if c.random > 0 {
		if err := s.AddRandom(c.random); err != nil {
			return nil, err
		}
		log.Printf("added %d random houses", c.random)
	}
	if c.saveData != "" {
		if err := csvio.SaveSamples(c.saveData, s.Samples()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func train(s *session.Session) (*session.Run, error) {
	start := time.Now()
	run, err := s.Train()
	if err != nil {
		if errors.Is(err, session.ErrInsufficientData) {
			return nil, fmt.Errorf("%w (use -data or -random)", err)
		}
		return nil, err
	}
	log.Printf("%s: %d iterations in %v", run.Settings.Method.Label(), len(run.History), time.Since(start))
	return run, nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var c commonFlags
	c.register(fs)
	out := fs.String("out", "", "Write the history to this CSV file (.zst, .s2, .lz4 compressed ok)")
	_ = fs.Parse(args)

	s, err := c.session()
	if err != nil {
		return err
	}
	run, err := train(s)
	if err != nil {
		return err
	}

	fmt.Printf("x_mean=%.4f x_std=%.4f y_mean=%.0f y_std=%.0f\n\n",
		run.Stats.XMean, run.Stats.XStd, run.Stats.YMean, run.Stats.YStd)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "step\tw\tb\tloss\t")
	for i, e := range run.History {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.8f\t\n", i, e.W, e.B, e.Loss)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if *out != "" {
		if err := csvio.SaveHistory(*out, run.History); err != nil {
			return err
		}
		log.Printf("history written to %s", *out)
	}
	return nil
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	var c commonFlags
	c.register(fs)
	size := fs.Float64("size", 0, "House size in m²")
	_ = fs.Parse(args)

	if *size <= 0 {
		return fmt.Errorf("%w: please enter a house size with -size", session.ErrInvalidInput)
	}

	s, err := c.session()
	if err != nil {
		return err
	}
	if _, err := train(s); err != nil {
		return err
	}

	p, err := s.Predict(*size)
	if err != nil {
		return err
	}
	fmt.Printf("Normalized Prediction: %.3f\n", p.Normalized)
	fmt.Printf("Predicted House Price: Rp %s\n", groupThousands(p.Price))
	return nil
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var c commonFlags
	c.register(fs)
	interval := fs.Duration("interval", 300*time.Millisecond, "Delay between steps")
	_ = fs.Parse(args)

	s, err := c.session()
	if err != nil {
		return err
	}
	if err := s.Play(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printFrame := func() error {
		f, err := s.Frame()
		if err != nil {
			return err
		}
		fmt.Printf("iter %3d  %-28s  loss=%.8f\n", f.Step, f.Equation, f.Losses[len(f.Losses)-1])
		return nil
	}
	if err := printFrame(); err != nil {
		return err
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Pause()
			log.Printf("paused at step %d", s.Step())
			return nil
		case <-ticker.C:
			if _, moved := s.Tick(); !moved {
				return nil
			}
			if err := printFrame(); err != nil {
				return err
			}
		}
	}
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	var c commonFlags
	c.register(fs)
	_ = fs.Parse(args)

	s, err := c.session()
	if err != nil {
		return err
	}
	runs, err := s.Compare()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "method\tw\tb\tfinal loss")
	for _, m := range optim.Methods {
		final, _ := runs[m].History.Final()
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.10f\n", m.Label(), final.W, final.B, final.Loss)
	}
	return tw.Flush()
}

// groupThousands formats v rounded to an integer with comma separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
