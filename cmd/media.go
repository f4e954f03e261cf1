package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	uploadApi "buildmart.GO/api/upload"
	"buildmart.GO/service/media"
)

var (
	mediaFolder   string
	mediaMaxWidth int
	mediaThumb    int
	mediaWebP     bool
	mediaRaw      bool
)

var mediaUploadCmd = &cobra.Command{
	Use:   "media:upload <image> [image...]",
	Short: "Prepare product images locally and upload the renditions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		api := uploadApi.New(c)
		ctx := context.Background()

		var files []uploadApi.File
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				fail(err)
			}
			defer f.Close()

			if mediaRaw {
				files = append(files, uploadApi.File{Name: filepath.Base(path), Reader: f})
				continue
			}
			renditions, err := media.PrepareImage(filepath.Base(path), f, media.Options{
				MaxWidth:  mediaMaxWidth,
				ThumbSize: mediaThumb,
				WebP:      mediaWebP,
			})
			if err != nil {
				fail(err)
			}
			for _, r := range renditions {
				files = append(files, uploadApi.File{Name: r.Name, Reader: r.Reader})
			}
		}

		if len(files) == 1 {
			uploaded, err := api.UploadFile(ctx, files[0], mediaFolder)
			if err != nil {
				fail(err)
			}
			fmt.Printf("%s -> %s (%d bytes)\n", uploaded.Filename, uploaded.URL, uploaded.Size)
			return
		}
		uploaded, err := api.UploadFiles(ctx, files, mediaFolder)
		if err != nil {
			fail(err)
		}
		for _, u := range uploaded {
			fmt.Printf("%s -> %s (%d bytes)\n", u.Filename, u.URL, u.Size)
		}
	},
}

func init() {
	mediaUploadCmd.Flags().StringVar(&mediaFolder, "folder", "products", "Target folder on the backend")
	mediaUploadCmd.Flags().IntVar(&mediaMaxWidth, "max-width", 1600, "Downscale wider images to this width")
	mediaUploadCmd.Flags().IntVar(&mediaThumb, "thumb", 200, "Thumbnail edge length in pixels")
	mediaUploadCmd.Flags().BoolVar(&mediaWebP, "webp", false, "Also emit a webp rendition")
	mediaUploadCmd.Flags().BoolVar(&mediaRaw, "raw", false, "Upload files as-is without preparing renditions")
	rootCmd.AddCommand(mediaUploadCmd)
}
