package config

// DefaultCategories is the built-in catalog used when the config file does
// not list its own.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Internet", Packages: []string{
			"firefox", "chromium", "thunderbird", "falkon", "qutebrowser",
			"epiphany", "lynx", "links", "w3m", "elinks", "konqueror", "nyxt",
		}},
		{Name: "Terminal", Packages: []string{
			"vim", "emacs", "htop", "alacritty", "kitty", "tmux", "zsh", "fish",
			"ranger", "ncdu", "btop", "lazygit", "tig", "micro", "nano", "mc",
			"wezterm", "xterm", "konsole", "gnome-terminal", "xfce4-terminal",
		}},
		{Name: "WM/DE", Packages: []string{
			"cinnamon", "gnome", "xfce4", "i3-wm", "awesome", "bspwm", "qtile",
			"lxqt", "mate", "openbox", "fluxbox", "icewm", "sway", "hyprland",
			"herbstluftwm", "xmonad", "labwc", "budgie-desktop",
		}},
		{Name: "Office", Packages: []string{
			"libreoffice-fresh", "abiword", "gnumeric", "scribus", "lyx",
			"texstudio", "zathura", "calibre", "okular", "evince", "xournalpp",
			"cherrytree", "zim", "geany", "bluefish",
		}},
		{Name: "Multimedia", Packages: []string{
			"vlc", "audacity", "kdenlive", "obs-studio", "kodi", "handbrake",
			"ffmpeg", "mpv", "smplayer", "celluloid", "shotcut", "blender",
			"gimp", "inkscape", "darktable", "krita", "ardour", "lmms",
			"musescore", "audacious", "rhythmbox", "cmus", "mpd", "ncmpcpp",
		}},
		{Name: "Games", Packages: []string{
			"steam", "lutris", "wine", "retroarch", "dolphin-emu", "ppsspp",
			"scummvm", "dosbox", "openmw", "supertuxkart", "xonotic",
			"wesnoth", "0ad", "openttd", "freeciv", "warzone2100", "nethack",
			"angband",
		}},
		{Name: "Development", Packages: []string{
			"code", "eclipse-java", "codeblocks", "qtcreator", "kdevelop",
			"arduino", "rustup", "gcc", "clang", "llvm", "cmake", "meson",
			"ninja", "git", "mercurial", "subversion", "docker", "podman",
			"ansible", "terraform", "vagrant", "packer",
		}},
		{Name: "System Utilities", Packages: []string{
			"htop", "gnome-disk-utility", "gparted", "timeshift", "baobab",
			"bleachbit", "grsync", "rsync", "ufw", "gufw", "firewalld", "nmap",
			"wireshark-qt", "tcpdump", "iotop", "iftop", "nethogs", "bmon",
			"inxi", "lshw", "lsof", "strace", "ltrace", "gdb", "valgrind",
			"perf", "sysstat",
		}},
		{Name: "Education", Packages: []string{
			"kstars", "stellarium", "gcompris-qt", "kalzium", "kgeography",
			"kmplot", "kwordquiz", "step", "marble", "cantor", "maxima",
			"wxmaxima", "octave", "jupyter-notebook", "gperiodic",
		}},
		{Name: "Fonts", Packages: []string{
			"ttf-dejavu", "ttf-liberation", "ttf-fira-code", "ttf-font-awesome",
			"ttf-roboto", "ttf-nerd-fonts-symbols", "ttf-inconsolata",
			"ttf-droid", "ttf-opensans", "ttf-jetbrains-mono", "ttf-hack",
			"ttf-cascadia-code", "ttf-ibm-plex",
		}},
		{Name: "Icons", Packages: []string{
			"papirus-icon-theme", "breeze-icons", "oxygen-icons",
			"elementary-icon-theme", "arc-icon-theme", "deepin-icon-theme",
			"adwaita-icon-theme",
		}},
		{Name: "Themes", Packages: []string{
			"arc-gtk-theme", "breeze-gtk", "materia-gtk-theme",
			"gnome-themes-extra", "deepin-gtk-theme",
		}},
	}
}

// Names returns the category's packages in order with duplicates dropped.
func (c Category) Names() []string {
	seen := make(map[string]bool, len(c.Packages))
	names := make([]string, 0, len(c.Packages))
	for _, pkg := range c.Packages {
		if pkg == "" || seen[pkg] {
			continue
		}
		seen[pkg] = true
		names = append(names, pkg)
	}
	return names
}
