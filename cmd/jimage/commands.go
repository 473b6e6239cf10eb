package main

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	jimage "github.com/lagertha-vm/lagertha-image"
	"github.com/lagertha-vm/lagertha-image/cache"
)

func headerAction(c *cli.Context) error {
	img, err := openImage(c)
	if err != nil {
		return err
	}
	defer img.Close()

	h, l := img.Header(), img.Layout()
	w := c.App.Writer
	fmt.Fprintf(w, "magic:          0x%08X\n", h.Magic)
	fmt.Fprintf(w, "version:        %d.%d\n", h.Major, h.Minor)
	fmt.Fprintf(w, "flags:          0x%X\n", h.Flags)
	fmt.Fprintf(w, "resources:      %d\n", h.ResourceCount)
	fmt.Fprintf(w, "table length:   %d\n", h.TableLength)
	fmt.Fprintf(w, "locations size: %d\n", h.LocationsSize)
	fmt.Fprintf(w, "strings size:   %d\n", h.StringsSize)
	fmt.Fprintf(w, "redirect:       %d\n", l.Redirect)
	fmt.Fprintf(w, "offsets:        %d\n", l.Offsets)
	fmt.Fprintf(w, "locations:      %d\n", l.Locations)
	fmt.Fprintf(w, "strings:        %d\n", l.Strings)
	fmt.Fprintf(w, "data:           %d\n", l.Data)
	fmt.Fprintf(w, "file size:      %d\n", img.Size())
	return nil
}

func lookupAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("lookup: at least one class name is required")
	}
	img, err := openImage(c)
	if err != nil {
		return err
	}
	defer img.Close()

	cached, err := cache.New(img, c.Int("cache-size"))
	if err != nil {
		return err
	}

	missing := 0
	for _, name := range c.Args().Slice() {
		content, ok, err := cached.FindClass(name)
		switch {
		case errors.Is(err, jimage.ErrCompressed):
			fmt.Fprintf(c.App.Writer, "%s\tcompressed\n", name)
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		case !ok:
			missing++
			fmt.Fprintf(c.App.Writer, "%s\tnot found\n", name)
		default:
			fmt.Fprintf(c.App.Writer, "%s\t%d\t%s\n", name, len(content), digest.FromBytes(content))
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d classes not found", missing, c.NArg())
	}
	return nil
}

func catAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("cat: exactly one class name is required")
	}
	img, err := openImage(c)
	if err != nil {
		return err
	}
	defer img.Close()

	name := c.Args().First()
	content, ok, err := img.FindClass(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("%s: not found", name)
	}
	_, err = c.App.Writer.Write(content)
	return err
}

func resourceAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("resource: exactly one full path is required")
	}
	img, err := openImage(c)
	if err != nil {
		return err
	}
	defer img.Close()

	p := c.Args().First()
	e, ok, err := img.Location(p)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	if !ok {
		return fmt.Errorf("%s: not found", p)
	}
	name, err := img.FullName(e)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "name:         %s\n", name)
	for _, k := range []jimage.Kind{jimage.KindModule, jimage.KindParent, jimage.KindBase, jimage.KindExtension, jimage.KindOffset, jimage.KindCompressed, jimage.KindUncompressed} {
		fmt.Fprintf(w, "%-13s %d\n", k.String()+":", e.Attribute(k))
	}
	if !e.IsCompressed() {
		content, err := img.Content(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "digest:       %s\n", digest.FromBytes(content))
	}
	return nil
}

func verifyAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("verify: at least one class name is required")
	}
	img, err := openImage(c)
	if err != nil {
		return err
	}
	defer img.Close()

	var (
		mu      sync.Mutex
		missing []string
	)
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(c.Int("jobs"), 1))
	for _, name := range c.Args().Slice() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, ok, err := img.FindClass(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if !ok {
				mu.Lock()
				missing = append(missing, name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		for _, name := range missing {
			fmt.Fprintf(c.App.Writer, "missing: %s\n", name)
		}
		return fmt.Errorf("%d of %d classes missing", len(missing), c.NArg())
	}
	fmt.Fprintf(c.App.Writer, "ok: %d classes\n", c.NArg())
	return nil
}
