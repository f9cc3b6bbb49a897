package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Albums fetches and prints every album the user created or was invited to.
func (a *App) Albums(ctx context.Context) error {
	albums, err := a.api.ListAlbums(ctx)
	if err != nil {
		log.Printf("error listing albums: %s", err.Error())
		return err
	}

	if len(albums) == 0 {
		fmt.Println("No albums yet. Use 'create' to start one.")
		return nil
	}

	for _, album := range albums {
		visibility := "private"
		if album.IsPublic {
			visibility = "public"
		}
		fmt.Printf("%s  %-30s %s  %s\n", album.ID, album.Title, visibility, album.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// CreateAlbum interactively creates an album and makes it current.
func (a *App) CreateAlbum(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Album title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	isPublic, err := GetYesNo(a.reader, "Make the share link public?", os.Stdout)
	if err != nil {
		return err
	}

	album, err := a.api.CreateAlbum(ctx, title, description, isPublic)
	if err != nil {
		log.Printf("error creating album: %s", err.Error())
		return err
	}

	a.setCurrentAlbum(ctx, album.ID)
	fmt.Printf("Created album %s (%s)\n", album.Title, album.ID)
	return nil
}

// OpenAlbum makes the album with the given ID the target of upload, media,
// and saveall commands. The choice is persisted across runs.
func (a *App) OpenAlbum(ctx context.Context, albumID string) error {
	album, err := a.api.GetAlbum(ctx, albumID)
	if err != nil {
		log.Printf("error opening album: %s", err.Error())
		return err
	}

	a.currentAlbum = album
	if err := a.store.SaveCurrentAlbum(ctx, album.ID); err != nil {
		log.Printf("error persisting current album: %s", err.Error())
	}

	fmt.Printf("Opened album %s\n", album.Title)
	return nil
}

// setCurrentAlbum refreshes the current album from the server and persists
// the selection. Used after create so the prompt shows the new album.
func (a *App) setCurrentAlbum(ctx context.Context, albumID string) {
	album, err := a.api.GetAlbum(ctx, albumID)
	if err != nil {
		return
	}
	a.currentAlbum = album
	if err := a.store.SaveCurrentAlbum(ctx, album.ID); err != nil {
		log.Printf("error persisting current album: %s", err.Error())
	}
}

// Invite adds a collaborator to the current album by email.
func (a *App) Invite(ctx context.Context) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Collaborator email", os.Stdout)
	if err != nil {
		return err
	}

	member, err := a.api.AddMember(ctx, a.currentAlbum.ID, email, "")
	if err != nil {
		log.Printf("error adding member: %s", err.Error())
		return err
	}

	fmt.Printf("Invited %s as %s\n", member.AllowedEmail, member.Role)
	return nil
}

// Members lists the collaborators of the current album.
func (a *App) Members(ctx context.Context) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	members, err := a.api.ListMembers(ctx, a.currentAlbum.ID)
	if err != nil {
		log.Printf("error listing members: %s", err.Error())
		return err
	}

	if len(members) == 0 {
		fmt.Println("No members yet. Use 'invite' to add one.")
		return nil
	}

	for _, m := range members {
		fmt.Printf("%s  %-30s %s\n", m.ID, m.AllowedEmail, m.Role)
	}
	return nil
}

// Share prints the share link of the current album.
func (a *App) Share(ctx context.Context) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	// refresh so visibility changes made elsewhere show up
	album, err := a.api.GetAlbum(ctx, a.currentAlbum.ID)
	if err != nil {
		log.Printf("error fetching album: %s", err.Error())
		return err
	}
	a.currentAlbum = album

	if !album.IsPublic {
		fmt.Println("Album is private. The share link only works for public albums.")
	}
	fmt.Printf("%s/api/v1/share/%s\n", a.config.ServerAddr, album.ShareID)
	return nil
}
