package constant

// AsciiArtLogo is printed above the root command help.
const AsciiArtLogo = `
  _                   _          _   _ 
 | |_ ___  _   _  ___| |__   ___| |_| |
 | __/ _ \| | | |/ __| '_ \ / __| __| |
 | || (_) | |_| | (__| | | | (__| |_| |
  \__\___/ \__,_|\___|_| |_|\___|\__|_|`
