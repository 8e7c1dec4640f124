package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
	"github.com/shouni/hyperreal-character-studio/pkg/studio"
)

var generateOpts struct {
	prompt      string
	style       string
	armor       string
	environment string
	outDir      string
	random      bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run a single generation round and save the four images",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.prompt, "prompt", "p", "", "free-text character description")
	f.StringVarP(&generateOpts.style, "style", "s", string(domain.StylePhotorealistic), "visual style")
	f.StringVar(&generateOpts.armor, "armor", "", "armor override (Sci-Fi, Medieval, Modern)")
	f.StringVar(&generateOpts.environment, "env", "", "environment override (Battlefield, Rainy Tokyo, Snowy Mountain)")
	f.StringVarP(&generateOpts.outDir, "out", "o", ".", "output directory (local path, gs://bucket/prefix or s3://bucket/prefix)")
	f.BoolVar(&generateOpts.random, "random", false, "use a random sample prompt")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	text := generateOpts.prompt
	if generateOpts.random {
		text = domain.SamplePrompts[rand.IntN(len(domain.SamplePrompts))]
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("--prompt か --random のどちらかを指定してください")
	}
	style, err := domain.ParseStyle(generateOpts.style)
	if err != nil {
		return err
	}
	armor, err := domain.ParseArmor(generateOpts.armor)
	if err != nil {
		return err
	}
	env, err := domain.ParseEnvironment(generateOpts.environment)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	a.studio.OnStateChange(func(s domain.LoadingState) {
		if s.Message != "" {
			slog.Info(s.Message, "status", s.Status)
		}
	})

	w, closeWriter, err := newOutputWriter(ctx, generateOpts.outDir)
	if err != nil {
		return err
	}
	defer closeWriter()

	opts := studio.SubmitOptions{}
	if overrides := (&domain.GenerationOverrides{Armor: armor, Environment: env}); !overrides.IsZero() {
		opts.Overrides = overrides
	}
	done, err := a.studio.SubmitWith(ctx, text, style, opts)
	if err != nil {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("%s: %w", studio.MessageFailed, err)
	}

	result := a.studio.Snapshot().Result
	saved, err := saveImages(ctx, w, generateOpts.outDir, result.ImageURLs, time.Now())
	if err != nil {
		return err
	}
	for _, uri := range saved {
		slog.Info("画像を保存しました", "uri", uri)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Analysis.RefinedPrompt)
	return nil
}
