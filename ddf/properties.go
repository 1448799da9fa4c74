package ddf

// Escher property ids.
const (
	TRANSFORM__ROTATION              = 4
	PROTECTION__LOCKROTATION         = 119
	PROTECTION__LOCKASPECTRATIO      = 120
	PROTECTION__LOCKPOSITION         = 121
	PROTECTION__LOCKAGAINSTSELECT    = 122
	PROTECTION__LOCKCROPPING         = 123
	PROTECTION__LOCKVERTICES         = 124
	PROTECTION__LOCKTEXT             = 125
	PROTECTION__LOCKADJUSTHANDLES    = 126
	PROTECTION__LOCKAGAINSTGROUPING  = 127
	TEXT__TEXTID                     = 128
	TEXT__TEXTLEFT                   = 129
	TEXT__TEXTTOP                    = 130
	TEXT__TEXTRIGHT                  = 131
	TEXT__TEXTBOTTOM                 = 132
	TEXT__WRAPTEXT                   = 133
	TEXT__SCALETEXT                  = 134
	TEXT__ANCHORTEXT                 = 135
	TEXT__TEXTFLOW                   = 136
	TEXT__FONTROTATION               = 137
	TEXT__IDOFNEXTSHAPE              = 138
	TEXT__BIDIR                      = 139
	TEXT__SINGLECLICKSELECTS         = 187
	TEXT__USEHOSTMARGINS             = 188
	TEXT__ROTATETEXTWITHSHAPE        = 189
	TEXT__SIZESHAPETOFITTEXT         = 190
	TEXT__SIZE_TEXT_TO_FIT_SHAPE     = 191
	GEOTEXT__UNICODE                 = 192
	GEOTEXT__RTFTEXT                 = 193
	GEOTEXT__ALIGNMENTONCURVE        = 194
	GEOTEXT__DEFAULTPOINTSIZE        = 195
	GEOTEXT__TEXTSPACING             = 196
	GEOTEXT__FONTFAMILYNAME          = 197
	GEOTEXT__REVERSEROWORDER         = 240
	GEOTEXT__HASTEXTEFFECT           = 241
	GEOTEXT__ROTATECHARACTERS        = 242
	GEOTEXT__KERNCHARACTERS          = 243
	GEOTEXT__TIGHTORTRACK            = 244
	GEOTEXT__STRETCHTOFITSHAPE       = 245
	GEOTEXT__CHARBOUNDINGBOX         = 246
	GEOTEXT__SCALETEXTONPATH         = 247
	GEOTEXT__STRETCHCHARHEIGHT       = 248
	GEOTEXT__NOMEASUREALONGPATH      = 249
	GEOTEXT__BOLDFONT                = 250
	GEOTEXT__ITALICFONT              = 251
	GEOTEXT__UNDERLINEFONT           = 252
	GEOTEXT__SHADOWFONT              = 253
	GEOTEXT__SMALLCAPSFONT           = 254
	GEOTEXT__STRIKETHROUGHFONT       = 255
	BLIP__CROPFROMTOP                = 256
	BLIP__CROPFROMBOTTOM             = 257
	BLIP__CROPFROMLEFT               = 258
	BLIP__CROPFROMRIGHT              = 259
	BLIP__BLIPTODISPLAY              = 260
	BLIP__BLIPFILENAME               = 261
	BLIP__BLIPFLAGS                  = 262
	BLIP__TRANSPARENTCOLOR           = 263
	BLIP__CONTRASTSETTING            = 264
	BLIP__BRIGHTNESSSETTING          = 265
	BLIP__GAMMA                      = 266
	BLIP__PICTUREID                  = 267
	BLIP__DOUBLEMOD                  = 268
	BLIP__PICTUREFILLMOD             = 269
	BLIP__PICTURELINE                = 270
	BLIP__PRINTBLIP                  = 271
	BLIP__PRINTBLIPFILENAME          = 272
	BLIP__PRINTFLAGS                 = 273
	BLIP__NOHITTESTPICTURE           = 316
	BLIP__PICTUREGRAY                = 317
	BLIP__PICTUREBILEVEL             = 318
	BLIP__PICTUREACTIVE              = 319
	GEOMETRY__LEFT                   = 320
	GEOMETRY__TOP                    = 321
	GEOMETRY__RIGHT                  = 322
	GEOMETRY__BOTTOM                 = 323
	GEOMETRY__SHAPEPATH              = 324
	GEOMETRY__VERTICES               = 325
	GEOMETRY__SEGMENTINFO            = 326
	GEOMETRY__ADJUSTVALUE            = 327
	GEOMETRY__ADJUST2VALUE           = 328
	GEOMETRY__ADJUST3VALUE           = 329
	GEOMETRY__ADJUST4VALUE           = 330
	GEOMETRY__ADJUST5VALUE           = 331
	GEOMETRY__ADJUST6VALUE           = 332
	GEOMETRY__ADJUST7VALUE           = 333
	GEOMETRY__ADJUST8VALUE           = 334
	GEOMETRY__ADJUST9VALUE           = 335
	GEOMETRY__ADJUST10VALUE          = 336
	GEOMETRY__SHADOWok               = 378
	GEOMETRY__3DOK                   = 379
	GEOMETRY__LINEOK                 = 380
	GEOMETRY__GEOTEXTOK              = 381
	GEOMETRY__FILLSHADESHAPEOK       = 382
	GEOMETRY__FILLOK                 = 383
	FILL__FILLTYPE                   = 384
	FILL__FILLCOLOR                  = 385
	FILL__FILLOPACITY                = 386
	FILL__FILLBACKCOLOR              = 387
	FILL__BACKOPACITY                = 388
	FILL__CRMOD                      = 389
	FILL__PATTERNTEXTURE             = 390
	FILL__BLIPFILENAME               = 391
	FILL__BLIPFLAGS                  = 392
	FILL__WIDTH                      = 393
	FILL__HEIGHT                     = 394
	FILL__ANGLE                      = 395
	FILL__FOCUS                      = 396
	FILL__TOLEFT                     = 397
	FILL__TOTOP                      = 398
	FILL__TORIGHT                    = 399
	FILL__TOBOTTOM                   = 400
	FILL__RECTLEFT                   = 401
	FILL__RECTTOP                    = 402
	FILL__RECTRIGHT                  = 403
	FILL__RECTBOTTOM                 = 404
	FILL__DZTYPE                     = 405
	FILL__SHADEPRESET                = 406
	FILL__SHADECOLORS                = 407
	FILL__ORIGINX                    = 408
	FILL__ORIGINY                    = 409
	FILL__SHAPEORIGINX               = 410
	FILL__SHAPEORIGINY               = 411
	FILL__SHADETYPE                  = 412
	FILL__FILLED                     = 443
	FILL__HITTESTFILL                = 444
	FILL__SHAPE                      = 445
	FILL__USERECT                    = 446
	FILL__NOFILLHITTEST              = 447
	LINESTYLE__COLOR                 = 448
	LINESTYLE__OPACITY               = 449
	LINESTYLE__BACKCOLOR             = 450
	LINESTYLE__CRMOD                 = 451
	LINESTYLE__LINETYPE              = 452
	LINESTYLE__FILLBLIP              = 453
	LINESTYLE__FILLBLIPNAME          = 454
	LINESTYLE__FILLBLIPFLAGS         = 455
	LINESTYLE__FILLWIDTH             = 456
	LINESTYLE__FILLHEIGHT            = 457
	LINESTYLE__FILLDZTYPE            = 458
	LINESTYLE__LINEWIDTH             = 459
	LINESTYLE__LINEMITERLIMIT        = 460
	LINESTYLE__LINESTYLE             = 461
	LINESTYLE__LINEDASHING           = 462
	LINESTYLE__LINEDASHSTYLE         = 463
	LINESTYLE__LINESTARTARROWHEAD    = 464
	LINESTYLE__LINEENDARROWHEAD      = 465
	LINESTYLE__LINESTARTARROWWIDTH   = 466
	LINESTYLE__LINEESTARTARROWLENGTH = 467
	LINESTYLE__LINEENDARROWWIDTH     = 468
	LINESTYLE__LINEENDARROWLENGTH    = 469
	LINESTYLE__LINEJOINSTYLE         = 470
	LINESTYLE__LINEENDCAPSTYLE       = 471
	LINESTYLE__ARROWHEADSOK          = 507
	LINESTYLE__ANYLINE               = 508
	LINESTYLE__HITLINETEST           = 509
	LINESTYLE__LINEFILLSHAPE         = 510
	LINESTYLE__NOLINEDRAWDASH        = 511
	SHADOWSTYLE__TYPE                = 512
	SHADOWSTYLE__COLOR               = 513
	SHADOWSTYLE__HIGHLIGHT           = 514
	SHADOWSTYLE__CRMOD               = 515
	SHADOWSTYLE__OPACITY             = 516
	SHADOWSTYLE__OFFSETX             = 517
	SHADOWSTYLE__OFFSETY             = 518
	SHADOWSTYLE__SECONDOFFSETX       = 519
	SHADOWSTYLE__SECONDOFFSETY       = 520
	SHADOWSTYLE__SCALEXTOX           = 521
	SHADOWSTYLE__SCALEYTOX           = 522
	SHADOWSTYLE__SCALEXTOY           = 523
	SHADOWSTYLE__SCALEYTOY           = 524
	SHADOWSTYLE__PERSPECTIVEX        = 525
	SHADOWSTYLE__PERSPECTIVEY        = 526
	SHADOWSTYLE__WEIGHT              = 527
	SHADOWSTYLE__ORIGINX             = 528
	SHADOWSTYLE__ORIGINY             = 529
	SHADOWSTYLE__SHADOW              = 574
	SHADOWSTYLE__SHADOWOBSURED       = 575
	PERSPECTIVE__TYPE                = 576
	PERSPECTIVE__OFFSETX             = 577
	PERSPECTIVE__OFFSETY             = 578
	PERSPECTIVE__SCALEXTOX           = 579
	PERSPECTIVE__SCALEYTOX           = 580
	PERSPECTIVE__SCALEXTOY           = 581
	PERSPECTIVE__SCALEYTOY           = 582
	PERSPECTIVE__PERSPECTIVEX        = 583
	PERSPECTIVE__PERSPECTIVEY        = 584
	PERSPECTIVE__WEIGHT              = 585
	PERSPECTIVE__ORIGINX             = 586
	PERSPECTIVE__ORIGINY             = 587
	PERSPECTIVE__PERSPECTIVEON       = 639
	THREED__SPECULARAMOUNT           = 640
	THREED__DIFFUSEAMOUNT            = 661
	THREED__SHININESS                = 662
	THREED__EDGETHICKNESS            = 663
	THREED__EXTRUDEFORWARD           = 664
	THREED__EXTRUDEBACKWARD          = 665
	THREED__EXTRUDEPLANE             = 666
	THREED__EXTRUSIONCOLOR           = 667
	THREED__CRMOD                    = 648
	THREED__3DEFFECT                 = 700
	THREED__METALLIC                 = 701
	THREED__USEEXTRUSIONCOLOR        = 702
	THREED__LIGHTFACE                = 703
	THREEDSTYLE__YROTATIONANGLE      = 704
	THREEDSTYLE__XROTATIONANGLE      = 705
	THREEDSTYLE__ROTATIONAXISX       = 706
	THREEDSTYLE__ROTATIONAXISY       = 707
	THREEDSTYLE__ROTATIONAXISZ       = 708
	THREEDSTYLE__ROTATIONANGLE       = 709
	THREEDSTYLE__ROTATIONCENTERX     = 710
	THREEDSTYLE__ROTATIONCENTERY     = 711
	THREEDSTYLE__ROTATIONCENTERZ     = 712
	THREEDSTYLE__RENDERMODE          = 713
	THREEDSTYLE__TOLERANCE           = 714
	THREEDSTYLE__XVIEWPOINT          = 715
	THREEDSTYLE__YVIEWPOINT          = 716
	THREEDSTYLE__ZVIEWPOINT          = 717
	THREEDSTYLE__ORIGINX             = 718
	THREEDSTYLE__ORIGINY             = 719
	THREEDSTYLE__SKEWANGLE           = 720
	THREEDSTYLE__SKEWAMOUNT          = 721
	THREEDSTYLE__AMBIENTINTENSITY    = 722
	THREEDSTYLE__KEYX                = 723
	THREEDSTYLE__KEYY                = 724
	THREEDSTYLE__KEYZ                = 725
	THREEDSTYLE__KEYINTENSITY        = 726
	THREEDSTYLE__FILLX               = 727
	THREEDSTYLE__FILLY               = 728
	THREEDSTYLE__FILLZ               = 729
	THREEDSTYLE__FILLINTENSITY       = 730
	THREEDSTYLE__CONSTRAINROTATION   = 763
	THREEDSTYLE__ROTATIONCENTERAUTO  = 764
	THREEDSTYLE__PARALLEL            = 765
	THREEDSTYLE__KEYHARSH            = 766
	THREEDSTYLE__FILLHARSH           = 767
	SHAPE__MASTER                    = 769
	SHAPE__CONNECTORSTYLE            = 771
	SHAPE__BLACKANDWHITESETTINGS     = 772
	SHAPE__WMODEPUREBW               = 773
	SHAPE__WMODEBW                   = 774
	SHAPE__OLEICON                   = 826
	SHAPE__PREFERRELATIVERESIZE      = 827
	SHAPE__LOCKSHAPETYPE             = 828
	SHAPE__DELETEATTACHEDOBJECT      = 830
	SHAPE__BACKGROUNDSHAPE           = 831
	CALLOUT__CALLOUTTYPE             = 832
	CALLOUT__XYCALLOUTGAP            = 833
	CALLOUT__CALLOUTANGLE            = 834
	CALLOUT__CALLOUTDROPTYPE         = 835
	CALLOUT__CALLOUTDROPSPECIFIED    = 836
	CALLOUT__CALLOUTLENGTHSPECIFIED  = 837
	CALLOUT__ISCALLOUT               = 889
	CALLOUT__CALLOUTACCENTBAR        = 890
	CALLOUT__CALLOUTTEXTBORDER       = 891
	CALLOUT__CALLOUTMINUSX           = 892
	CALLOUT__CALLOUTMINUSY           = 893
	CALLOUT__DROPAUTO                = 894
	CALLOUT__LENGTHSPECIFIED         = 895
	GROUPSHAPE__SHAPENAME            = 0x0380
	GROUPSHAPE__DESCRIPTION          = 0x0381
	GROUPSHAPE__HYPERLINK            = 0x0382
	GROUPSHAPE__WRAPPOLYGONVERTICES  = 0x0383
	GROUPSHAPE__WRAPDISTLEFT         = 0x0384
	GROUPSHAPE__WRAPDISTTOP          = 0x0385
	GROUPSHAPE__WRAPDISTRIGHT        = 0x0386
	GROUPSHAPE__WRAPDISTBOTTOM       = 0x0387
	GROUPSHAPE__REGROUPID            = 0x0388
	GROUPSHAPE__UNUSED906            = 0x038A
	GROUPSHAPE__TOOLTIP              = 0x038D
	GROUPSHAPE__SCRIPT               = 0x038E
	GROUPSHAPE__POSH                 = 0x038F
	GROUPSHAPE__POSRELH              = 0x0390
	GROUPSHAPE__POSV                 = 0x0391
	GROUPSHAPE__POSRELV              = 0x0392
	GROUPSHAPE__HR_PCT               = 0x0393
	GROUPSHAPE__HR_ALIGN             = 0x0394
	GROUPSHAPE__HR_HEIGHT            = 0x0395
	GROUPSHAPE__HR_WIDTH             = 0x0396
	GROUPSHAPE__SCRIPTEXT            = 0x0397
	GROUPSHAPE__SCRIPTLANG           = 0x0398
	GROUPSHAPE__BORDERTOPCOLOR       = 0x039B
	GROUPSHAPE__BORDERLEFTCOLOR      = 0x039C
	GROUPSHAPE__BORDERBOTTOMCOLOR    = 0x039D
	GROUPSHAPE__BORDERRIGHTCOLOR     = 0x039E
	GROUPSHAPE__TABLEPROPERTIES      = 0x039F
	GROUPSHAPE__TABLEROWPROPERTIES   = 0x03A0
	GROUPSHAPE__WEBBOT               = 0x03A5
	GROUPSHAPE__METROBLOB            = 0x03A9
	GROUPSHAPE__ZORDER               = 0x03AA
	GROUPSHAPE__FLAGS                = 0x03BF
	GROUPSHAPE__EDITEDWRAP           = 953
	GROUPSHAPE__BEHINDDOCUMENT       = 954
	GROUPSHAPE__ONDBLCLICKNOTIFY     = 955
	GROUPSHAPE__ISBUTTON             = 956
	GROUPSHAPE__1DADJUSTMENT         = 957
	GROUPSHAPE__HIDDEN               = 958
	GROUPSHAPE__PRINT                = 959
)

var propertyTable = map[uint16]PropertyMetaData{
	TRANSFORM__ROTATION:              {Name: "transform.rotation"},
	PROTECTION__LOCKROTATION:         {Name: "protection.lockrotation"},
	PROTECTION__LOCKASPECTRATIO:      {Name: "protection.lockaspectratio"},
	PROTECTION__LOCKPOSITION:         {Name: "protection.lockposition"},
	PROTECTION__LOCKAGAINSTSELECT:    {Name: "protection.lockagainstselect"},
	PROTECTION__LOCKCROPPING:         {Name: "protection.lockcropping"},
	PROTECTION__LOCKVERTICES:         {Name: "protection.lockvertices"},
	PROTECTION__LOCKTEXT:             {Name: "protection.locktext"},
	PROTECTION__LOCKADJUSTHANDLES:    {Name: "protection.lockadjusthandles"},
	PROTECTION__LOCKAGAINSTGROUPING:  {"protection.lockagainstgrouping", TypeBoolean},
	TEXT__TEXTID:                     {Name: "text.textid"},
	TEXT__TEXTLEFT:                   {Name: "text.textleft"},
	TEXT__TEXTTOP:                    {Name: "text.texttop"},
	TEXT__TEXTRIGHT:                  {Name: "text.textright"},
	TEXT__TEXTBOTTOM:                 {Name: "text.textbottom"},
	TEXT__WRAPTEXT:                   {Name: "text.wraptext"},
	TEXT__SCALETEXT:                  {Name: "text.scaletext"},
	TEXT__ANCHORTEXT:                 {Name: "text.anchortext"},
	TEXT__TEXTFLOW:                   {Name: "text.textflow"},
	TEXT__FONTROTATION:               {Name: "text.fontrotation"},
	TEXT__IDOFNEXTSHAPE:              {Name: "text.idofnextshape"},
	TEXT__BIDIR:                      {Name: "text.bidir"},
	TEXT__SINGLECLICKSELECTS:         {Name: "text.singleclickselects"},
	TEXT__USEHOSTMARGINS:             {Name: "text.usehostmargins"},
	TEXT__ROTATETEXTWITHSHAPE:        {Name: "text.rotatetextwithshape"},
	TEXT__SIZESHAPETOFITTEXT:         {Name: "text.sizeshapetofittext"},
	TEXT__SIZE_TEXT_TO_FIT_SHAPE:     {"text.sizetexttofitshape", TypeBoolean},
	GEOTEXT__UNICODE:                 {Name: "geotext.unicode"},
	GEOTEXT__RTFTEXT:                 {Name: "geotext.rtftext"},
	GEOTEXT__ALIGNMENTONCURVE:        {Name: "geotext.alignmentoncurve"},
	GEOTEXT__DEFAULTPOINTSIZE:        {Name: "geotext.defaultpointsize"},
	GEOTEXT__TEXTSPACING:             {Name: "geotext.textspacing"},
	GEOTEXT__FONTFAMILYNAME:          {Name: "geotext.fontfamilyname"},
	GEOTEXT__REVERSEROWORDER:         {Name: "geotext.reverseroworder"},
	GEOTEXT__HASTEXTEFFECT:           {Name: "geotext.hastexteffect"},
	GEOTEXT__ROTATECHARACTERS:        {Name: "geotext.rotatecharacters"},
	GEOTEXT__KERNCHARACTERS:          {Name: "geotext.kerncharacters"},
	GEOTEXT__TIGHTORTRACK:            {Name: "geotext.tightortrack"},
	GEOTEXT__STRETCHTOFITSHAPE:       {Name: "geotext.stretchtofitshape"},
	GEOTEXT__CHARBOUNDINGBOX:         {Name: "geotext.charboundingbox"},
	GEOTEXT__SCALETEXTONPATH:         {Name: "geotext.scaletextonpath"},
	GEOTEXT__STRETCHCHARHEIGHT:       {Name: "geotext.stretchcharheight"},
	GEOTEXT__NOMEASUREALONGPATH:      {Name: "geotext.nomeasurealongpath"},
	GEOTEXT__BOLDFONT:                {Name: "geotext.boldfont"},
	GEOTEXT__ITALICFONT:              {Name: "geotext.italicfont"},
	GEOTEXT__UNDERLINEFONT:           {Name: "geotext.underlinefont"},
	GEOTEXT__SHADOWFONT:              {Name: "geotext.shadowfont"},
	GEOTEXT__SMALLCAPSFONT:           {Name: "geotext.smallcapsfont"},
	GEOTEXT__STRIKETHROUGHFONT:       {Name: "geotext.strikethroughfont"},
	BLIP__CROPFROMTOP:                {Name: "blip.cropfromtop"},
	BLIP__CROPFROMBOTTOM:             {Name: "blip.cropfrombottom"},
	BLIP__CROPFROMLEFT:               {Name: "blip.cropfromleft"},
	BLIP__CROPFROMRIGHT:              {Name: "blip.cropfromright"},
	BLIP__BLIPTODISPLAY:              {Name: "blip.bliptodisplay"},
	BLIP__BLIPFILENAME:               {Name: "blip.blipfilename"},
	BLIP__BLIPFLAGS:                  {Name: "blip.blipflags"},
	BLIP__TRANSPARENTCOLOR:           {Name: "blip.transparentcolor"},
	BLIP__CONTRASTSETTING:            {Name: "blip.contrastsetting"},
	BLIP__BRIGHTNESSSETTING:          {Name: "blip.brightnesssetting"},
	BLIP__GAMMA:                      {Name: "blip.gamma"},
	BLIP__PICTUREID:                  {Name: "blip.pictureid"},
	BLIP__DOUBLEMOD:                  {Name: "blip.doublemod"},
	BLIP__PICTUREFILLMOD:             {Name: "blip.picturefillmod"},
	BLIP__PICTURELINE:                {Name: "blip.pictureline"},
	BLIP__PRINTBLIP:                  {Name: "blip.printblip"},
	BLIP__PRINTBLIPFILENAME:          {Name: "blip.printblipfilename"},
	BLIP__PRINTFLAGS:                 {Name: "blip.printflags"},
	BLIP__NOHITTESTPICTURE:           {Name: "blip.nohittestpicture"},
	BLIP__PICTUREGRAY:                {Name: "blip.picturegray"},
	BLIP__PICTUREBILEVEL:             {Name: "blip.picturebilevel"},
	BLIP__PICTUREACTIVE:              {Name: "blip.pictureactive"},
	GEOMETRY__LEFT:                   {Name: "geometry.left"},
	GEOMETRY__TOP:                    {Name: "geometry.top"},
	GEOMETRY__RIGHT:                  {Name: "geometry.right"},
	GEOMETRY__BOTTOM:                 {Name: "geometry.bottom"},
	GEOMETRY__SHAPEPATH:              {"geometry.shapepath", TypeShapePath},
	GEOMETRY__VERTICES:               {"geometry.vertices", TypeArray},
	GEOMETRY__SEGMENTINFO:            {"geometry.segmentinfo", TypeArray},
	GEOMETRY__ADJUSTVALUE:            {Name: "geometry.adjustvalue"},
	GEOMETRY__ADJUST2VALUE:           {Name: "geometry.adjust2value"},
	GEOMETRY__ADJUST3VALUE:           {Name: "geometry.adjust3value"},
	GEOMETRY__ADJUST4VALUE:           {Name: "geometry.adjust4value"},
	GEOMETRY__ADJUST5VALUE:           {Name: "geometry.adjust5value"},
	GEOMETRY__ADJUST6VALUE:           {Name: "geometry.adjust6value"},
	GEOMETRY__ADJUST7VALUE:           {Name: "geometry.adjust7value"},
	GEOMETRY__ADJUST8VALUE:           {Name: "geometry.adjust8value"},
	GEOMETRY__ADJUST9VALUE:           {Name: "geometry.adjust9value"},
	GEOMETRY__ADJUST10VALUE:          {Name: "geometry.adjust10value"},
	GEOMETRY__SHADOWok:               {Name: "geometry.shadowOK"},
	GEOMETRY__3DOK:                   {Name: "geometry.3dok"},
	GEOMETRY__LINEOK:                 {Name: "geometry.lineok"},
	GEOMETRY__GEOTEXTOK:              {Name: "geometry.geotextok"},
	GEOMETRY__FILLSHADESHAPEOK:       {Name: "geometry.fillshadeshapeok"},
	GEOMETRY__FILLOK:                 {"geometry.fillok", TypeBoolean},
	FILL__FILLTYPE:                   {Name: "fill.filltype"},
	FILL__FILLCOLOR:                  {"fill.fillcolor", TypeRGB},
	FILL__FILLOPACITY:                {Name: "fill.fillopacity"},
	FILL__FILLBACKCOLOR:              {"fill.fillbackcolor", TypeRGB},
	FILL__BACKOPACITY:                {Name: "fill.backopacity"},
	FILL__CRMOD:                      {Name: "fill.crmod"},
	FILL__PATTERNTEXTURE:             {Name: "fill.patterntexture"},
	FILL__BLIPFILENAME:               {Name: "fill.blipfilename"},
	FILL__BLIPFLAGS:                  {Name: "fill.blipflags"},
	FILL__WIDTH:                      {Name: "fill.width"},
	FILL__HEIGHT:                     {Name: "fill.height"},
	FILL__ANGLE:                      {Name: "fill.angle"},
	FILL__FOCUS:                      {Name: "fill.focus"},
	FILL__TOLEFT:                     {Name: "fill.toleft"},
	FILL__TOTOP:                      {Name: "fill.totop"},
	FILL__TORIGHT:                    {Name: "fill.toright"},
	FILL__TOBOTTOM:                   {Name: "fill.tobottom"},
	FILL__RECTLEFT:                   {Name: "fill.rectleft"},
	FILL__RECTTOP:                    {Name: "fill.recttop"},
	FILL__RECTRIGHT:                  {Name: "fill.rectright"},
	FILL__RECTBOTTOM:                 {Name: "fill.rectbottom"},
	FILL__DZTYPE:                     {Name: "fill.dztype"},
	FILL__SHADEPRESET:                {Name: "fill.shadepreset"},
	FILL__SHADECOLORS:                {"fill.shadecolors", TypeArray},
	FILL__ORIGINX:                    {Name: "fill.originx"},
	FILL__ORIGINY:                    {Name: "fill.originy"},
	FILL__SHAPEORIGINX:               {Name: "fill.shapeoriginx"},
	FILL__SHAPEORIGINY:               {Name: "fill.shapeoriginy"},
	FILL__SHADETYPE:                  {Name: "fill.shadetype"},
	FILL__FILLED:                     {Name: "fill.filled"},
	FILL__HITTESTFILL:                {Name: "fill.hittestfill"},
	FILL__SHAPE:                      {Name: "fill.shape"},
	FILL__USERECT:                    {Name: "fill.userect"},
	FILL__NOFILLHITTEST:              {"fill.nofillhittest", TypeBoolean},
	LINESTYLE__COLOR:                 {"linestyle.color", TypeRGB},
	LINESTYLE__OPACITY:               {Name: "linestyle.opacity"},
	LINESTYLE__BACKCOLOR:             {"linestyle.backcolor", TypeRGB},
	LINESTYLE__CRMOD:                 {Name: "linestyle.crmod"},
	LINESTYLE__LINETYPE:              {Name: "linestyle.linetype"},
	LINESTYLE__FILLBLIP:              {Name: "linestyle.fillblip"},
	LINESTYLE__FILLBLIPNAME:          {Name: "linestyle.fillblipname"},
	LINESTYLE__FILLBLIPFLAGS:         {Name: "linestyle.fillblipflags"},
	LINESTYLE__FILLWIDTH:             {Name: "linestyle.fillwidth"},
	LINESTYLE__FILLHEIGHT:            {Name: "linestyle.fillheight"},
	LINESTYLE__FILLDZTYPE:            {Name: "linestyle.filldztype"},
	LINESTYLE__LINEWIDTH:             {Name: "linestyle.linewidth"},
	LINESTYLE__LINEMITERLIMIT:        {Name: "linestyle.linemiterlimit"},
	LINESTYLE__LINESTYLE:             {Name: "linestyle.linestyle"},
	LINESTYLE__LINEDASHING:           {Name: "linestyle.linedashing"},
	LINESTYLE__LINEDASHSTYLE:         {"linestyle.linedashstyle", TypeArray},
	LINESTYLE__LINESTARTARROWHEAD:    {Name: "linestyle.linestartarrowhead"},
	LINESTYLE__LINEENDARROWHEAD:      {Name: "linestyle.lineendarrowhead"},
	LINESTYLE__LINESTARTARROWWIDTH:   {Name: "linestyle.linestartarrowwidth"},
	LINESTYLE__LINEESTARTARROWLENGTH: {Name: "linestyle.lineestartarrowlength"},
	LINESTYLE__LINEENDARROWWIDTH:     {Name: "linestyle.lineendarrowwidth"},
	LINESTYLE__LINEENDARROWLENGTH:    {Name: "linestyle.lineendarrowlength"},
	LINESTYLE__LINEJOINSTYLE:         {Name: "linestyle.linejoinstyle"},
	LINESTYLE__LINEENDCAPSTYLE:       {Name: "linestyle.lineendcapstyle"},
	LINESTYLE__ARROWHEADSOK:          {Name: "linestyle.arrowheadsok"},
	LINESTYLE__ANYLINE:               {Name: "linestyle.anyline"},
	LINESTYLE__HITLINETEST:           {Name: "linestyle.hitlinetest"},
	LINESTYLE__LINEFILLSHAPE:         {Name: "linestyle.linefillshape"},
	LINESTYLE__NOLINEDRAWDASH:        {"linestyle.nolinedrawdash", TypeBoolean},
	SHADOWSTYLE__TYPE:                {Name: "shadowstyle.type"},
	SHADOWSTYLE__COLOR:               {"shadowstyle.color", TypeRGB},
	SHADOWSTYLE__HIGHLIGHT:           {Name: "shadowstyle.highlight"},
	SHADOWSTYLE__CRMOD:               {Name: "shadowstyle.crmod"},
	SHADOWSTYLE__OPACITY:             {Name: "shadowstyle.opacity"},
	SHADOWSTYLE__OFFSETX:             {Name: "shadowstyle.offsetx"},
	SHADOWSTYLE__OFFSETY:             {Name: "shadowstyle.offsety"},
	SHADOWSTYLE__SECONDOFFSETX:       {Name: "shadowstyle.secondoffsetx"},
	SHADOWSTYLE__SECONDOFFSETY:       {Name: "shadowstyle.secondoffsety"},
	SHADOWSTYLE__SCALEXTOX:           {Name: "shadowstyle.scalextox"},
	SHADOWSTYLE__SCALEYTOX:           {Name: "shadowstyle.scaleytox"},
	SHADOWSTYLE__SCALEXTOY:           {Name: "shadowstyle.scalextoy"},
	SHADOWSTYLE__SCALEYTOY:           {Name: "shadowstyle.scaleytoy"},
	SHADOWSTYLE__PERSPECTIVEX:        {Name: "shadowstyle.perspectivex"},
	SHADOWSTYLE__PERSPECTIVEY:        {Name: "shadowstyle.perspectivey"},
	SHADOWSTYLE__WEIGHT:              {Name: "shadowstyle.weight"},
	SHADOWSTYLE__ORIGINX:             {Name: "shadowstyle.originx"},
	SHADOWSTYLE__ORIGINY:             {Name: "shadowstyle.originy"},
	SHADOWSTYLE__SHADOW:              {Name: "shadowstyle.shadow"},
	SHADOWSTYLE__SHADOWOBSURED:       {Name: "shadowstyle.shadowobscured"},
	PERSPECTIVE__TYPE:                {Name: "perspective.type"},
	PERSPECTIVE__OFFSETX:             {Name: "perspective.offsetx"},
	PERSPECTIVE__OFFSETY:             {Name: "perspective.offsety"},
	PERSPECTIVE__SCALEXTOX:           {Name: "perspective.scalextox"},
	PERSPECTIVE__SCALEYTOX:           {Name: "perspective.scaleytox"},
	PERSPECTIVE__SCALEXTOY:           {Name: "perspective.scalextoy"},
	PERSPECTIVE__SCALEYTOY:           {Name: "perspective.scaleytoy"},
	PERSPECTIVE__PERSPECTIVEX:        {Name: "perspective.perspectivex"},
	PERSPECTIVE__PERSPECTIVEY:        {Name: "perspective.perspectivey"},
	PERSPECTIVE__WEIGHT:              {Name: "perspective.weight"},
	PERSPECTIVE__ORIGINX:             {Name: "perspective.originx"},
	PERSPECTIVE__ORIGINY:             {Name: "perspective.originy"},
	PERSPECTIVE__PERSPECTIVEON:       {Name: "perspective.perspectiveon"},
	THREED__SPECULARAMOUNT:           {Name: "3d.specularamount"},
	THREED__DIFFUSEAMOUNT:            {Name: "3d.diffuseamount"},
	THREED__SHININESS:                {Name: "3d.shininess"},
	THREED__EDGETHICKNESS:            {Name: "3d.edgethickness"},
	THREED__EXTRUDEFORWARD:           {Name: "3d.extrudeforward"},
	THREED__EXTRUDEBACKWARD:          {Name: "3d.extrudebackward"},
	THREED__EXTRUDEPLANE:             {Name: "3d.extrudeplane"},
	THREED__EXTRUSIONCOLOR:           {"3d.extrusioncolor", TypeRGB},
	THREED__CRMOD:                    {Name: "3d.crmod"},
	THREED__3DEFFECT:                 {Name: "3d.3deffect"},
	THREED__METALLIC:                 {Name: "3d.metallic"},
	THREED__USEEXTRUSIONCOLOR:        {"3d.useextrusioncolor", TypeRGB},
	THREED__LIGHTFACE:                {Name: "3d.lightface"},
	THREEDSTYLE__YROTATIONANGLE:      {Name: "3dstyle.yrotationangle"},
	THREEDSTYLE__XROTATIONANGLE:      {Name: "3dstyle.xrotationangle"},
	THREEDSTYLE__ROTATIONAXISX:       {Name: "3dstyle.rotationaxisx"},
	THREEDSTYLE__ROTATIONAXISY:       {Name: "3dstyle.rotationaxisy"},
	THREEDSTYLE__ROTATIONAXISZ:       {Name: "3dstyle.rotationaxisz"},
	THREEDSTYLE__ROTATIONANGLE:       {Name: "3dstyle.rotationangle"},
	THREEDSTYLE__ROTATIONCENTERX:     {Name: "3dstyle.rotationcenterx"},
	THREEDSTYLE__ROTATIONCENTERY:     {Name: "3dstyle.rotationcentery"},
	THREEDSTYLE__ROTATIONCENTERZ:     {Name: "3dstyle.rotationcenterz"},
	THREEDSTYLE__RENDERMODE:          {Name: "3dstyle.rendermode"},
	THREEDSTYLE__TOLERANCE:           {Name: "3dstyle.tolerance"},
	THREEDSTYLE__XVIEWPOINT:          {Name: "3dstyle.xviewpoint"},
	THREEDSTYLE__YVIEWPOINT:          {Name: "3dstyle.yviewpoint"},
	THREEDSTYLE__ZVIEWPOINT:          {Name: "3dstyle.zviewpoint"},
	THREEDSTYLE__ORIGINX:             {Name: "3dstyle.originx"},
	THREEDSTYLE__ORIGINY:             {Name: "3dstyle.originy"},
	THREEDSTYLE__SKEWANGLE:           {Name: "3dstyle.skewangle"},
	THREEDSTYLE__SKEWAMOUNT:          {Name: "3dstyle.skewamount"},
	THREEDSTYLE__AMBIENTINTENSITY:    {Name: "3dstyle.ambientintensity"},
	THREEDSTYLE__KEYX:                {Name: "3dstyle.keyx"},
	THREEDSTYLE__KEYY:                {Name: "3dstyle.keyy"},
	THREEDSTYLE__KEYZ:                {Name: "3dstyle.keyz"},
	THREEDSTYLE__KEYINTENSITY:        {Name: "3dstyle.keyintensity"},
	THREEDSTYLE__FILLX:               {Name: "3dstyle.fillx"},
	THREEDSTYLE__FILLY:               {Name: "3dstyle.filly"},
	THREEDSTYLE__FILLZ:               {Name: "3dstyle.fillz"},
	THREEDSTYLE__FILLINTENSITY:       {Name: "3dstyle.fillintensity"},
	THREEDSTYLE__CONSTRAINROTATION:   {Name: "3dstyle.constrainrotation"},
	THREEDSTYLE__ROTATIONCENTERAUTO:  {Name: "3dstyle.rotationcenterauto"},
	THREEDSTYLE__PARALLEL:            {Name: "3dstyle.parallel"},
	THREEDSTYLE__KEYHARSH:            {Name: "3dstyle.keyharsh"},
	THREEDSTYLE__FILLHARSH:           {Name: "3dstyle.fillharsh"},
	SHAPE__MASTER:                    {Name: "shape.master"},
	SHAPE__CONNECTORSTYLE:            {Name: "shape.connectorstyle"},
	SHAPE__BLACKANDWHITESETTINGS:     {Name: "shape.blackandwhitesettings"},
	SHAPE__WMODEPUREBW:               {Name: "shape.wmodepurebw"},
	SHAPE__WMODEBW:                   {Name: "shape.wmodebw"},
	SHAPE__OLEICON:                   {Name: "shape.oleicon"},
	SHAPE__PREFERRELATIVERESIZE:      {Name: "shape.preferrelativeresize"},
	SHAPE__LOCKSHAPETYPE:             {Name: "shape.lockshapetype"},
	SHAPE__DELETEATTACHEDOBJECT:      {Name: "shape.deleteattachedobject"},
	SHAPE__BACKGROUNDSHAPE:           {Name: "shape.backgroundshape"},
	CALLOUT__CALLOUTTYPE:             {Name: "callout.callouttype"},
	CALLOUT__XYCALLOUTGAP:            {Name: "callout.xycalloutgap"},
	CALLOUT__CALLOUTANGLE:            {Name: "callout.calloutangle"},
	CALLOUT__CALLOUTDROPTYPE:         {Name: "callout.calloutdroptype"},
	CALLOUT__CALLOUTDROPSPECIFIED:    {Name: "callout.calloutdropspecified"},
	CALLOUT__CALLOUTLENGTHSPECIFIED:  {Name: "callout.calloutlengthspecified"},
	CALLOUT__ISCALLOUT:               {Name: "callout.iscallout"},
	CALLOUT__CALLOUTACCENTBAR:        {Name: "callout.calloutaccentbar"},
	CALLOUT__CALLOUTTEXTBORDER:       {Name: "callout.callouttextborder"},
	CALLOUT__CALLOUTMINUSX:           {Name: "callout.calloutminusx"},
	CALLOUT__CALLOUTMINUSY:           {Name: "callout.calloutminusy"},
	CALLOUT__DROPAUTO:                {Name: "callout.dropauto"},
	CALLOUT__LENGTHSPECIFIED:         {Name: "callout.lengthspecified"},
	GROUPSHAPE__SHAPENAME:            {Name: "groupshape.shapename"},
	GROUPSHAPE__DESCRIPTION:          {Name: "groupshape.description"},
	GROUPSHAPE__HYPERLINK:            {Name: "groupshape.hyperlink"},
	GROUPSHAPE__WRAPPOLYGONVERTICES:  {"groupshape.wrappolygonvertices", TypeArray},
	GROUPSHAPE__WRAPDISTLEFT:         {Name: "groupshape.wrapdistleft"},
	GROUPSHAPE__WRAPDISTTOP:          {Name: "groupshape.wrapdisttop"},
	GROUPSHAPE__WRAPDISTRIGHT:        {Name: "groupshape.wrapdistright"},
	GROUPSHAPE__WRAPDISTBOTTOM:       {Name: "groupshape.wrapdistbottom"},
	GROUPSHAPE__REGROUPID:            {Name: "groupshape.regroupid"},
	GROUPSHAPE__UNUSED906:            {Name: "unused906"},
	GROUPSHAPE__TOOLTIP:              {Name: "groupshape.wzTooltip"},
	GROUPSHAPE__SCRIPT:               {Name: "groupshape.wzScript"},
	GROUPSHAPE__POSH:                 {Name: "groupshape.posh"},
	GROUPSHAPE__POSRELH:              {Name: "groupshape.posrelh"},
	GROUPSHAPE__POSV:                 {Name: "groupshape.posv"},
	GROUPSHAPE__POSRELV:              {Name: "groupshape.posrelv"},
	GROUPSHAPE__HR_PCT:               {Name: "groupshape.pctHR"},
	GROUPSHAPE__HR_ALIGN:             {Name: "groupshape.alignHR"},
	GROUPSHAPE__HR_HEIGHT:            {Name: "groupshape.dxHeightHR"},
	GROUPSHAPE__HR_WIDTH:             {Name: "groupshape.dxWidthHR"},
	GROUPSHAPE__SCRIPTEXT:            {Name: "groupshape.wzScriptExtAttr"},
	GROUPSHAPE__SCRIPTLANG:           {Name: "groupshape.scriptLang"},
	GROUPSHAPE__BORDERTOPCOLOR:       {Name: "groupshape.borderTopColor"},
	GROUPSHAPE__BORDERLEFTCOLOR:      {Name: "groupshape.borderLeftColor"},
	GROUPSHAPE__BORDERBOTTOMCOLOR:    {Name: "groupshape.borderBottomColor"},
	GROUPSHAPE__BORDERRIGHTCOLOR:     {Name: "groupshape.borderRightColor"},
	GROUPSHAPE__TABLEPROPERTIES:      {Name: "groupshape.tableProperties"},
	GROUPSHAPE__TABLEROWPROPERTIES:   {Name: "groupshape.tableRowProperties"},
	GROUPSHAPE__WEBBOT:               {Name: "groupshape.wzWebBot"},
	GROUPSHAPE__METROBLOB:            {Name: "groupshape.metroBlob"},
	GROUPSHAPE__ZORDER:               {Name: "groupshape.dhgt"},
	GROUPSHAPE__PRINT:                {"groupshape.print", TypeBoolean},
	GROUPSHAPE__EDITEDWRAP:           {Name: "groupshape.editedwrap"},
	GROUPSHAPE__BEHINDDOCUMENT:       {Name: "groupshape.behinddocument"},
	GROUPSHAPE__ONDBLCLICKNOTIFY:     {Name: "groupshape.ondblclicknotify"},
	GROUPSHAPE__ISBUTTON:             {Name: "groupshape.isbutton"},
	GROUPSHAPE__1DADJUSTMENT:         {Name: "groupshape.1dadjustment"},
	GROUPSHAPE__HIDDEN:               {Name: "groupshape.hidden"},
}
